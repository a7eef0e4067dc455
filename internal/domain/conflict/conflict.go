// Package conflict detects scheduling and eligibility conflicts in a snapshot.
//
// Detection runs a fixed battery of independent rules. A record lacking the
// data a rule needs is skipped for that rule only; missing information is
// never reported as a conflict.
package conflict

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/okian/flightdesk/internal/domain/availability"
	"github.com/okian/flightdesk/internal/domain/model"
	"github.com/okian/flightdesk/pkg/logger"
)

// Kind identifies a conflict rule.
type Kind string

// Conflict kinds, in reporting order.
const (
	KindDoubleBooking         Kind = "DoubleBooking"
	KindSkillCertMismatch     Kind = "SkillCertMismatch"
	KindUnavailableAssignment Kind = "UnavailableAssignment"
	KindLocationMismatch      Kind = "LocationMismatch"
	KindMaintenanceRequired   Kind = "MaintenanceRequired"
)

// Kinds lists the built-in kinds in reporting order.
var Kinds = []Kind{
	KindDoubleBooking,
	KindSkillCertMismatch,
	KindUnavailableAssignment,
	KindLocationMismatch,
	KindMaintenanceRequired,
}

// Severity grades a finding for operators.
type Severity string

// Severities.
const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
)

// Finding is one detected conflict.
type Finding struct {
	Kind             Kind          `json:"kind"`
	Severity         Severity      `json:"severity"`
	ResourceIDs      []string      `json:"resource_ids"`
	MissionID        string        `json:"mission_id,omitempty"`
	RelatedMissionID string        `json:"related_mission_id,omitempty"`
	Detail           string        `json:"detail"`
	Overlap          *model.Window `json:"overlap,omitempty"`
	MissingSkills    []string      `json:"missing_skills,omitempty"`
	MissingCerts     []string      `json:"missing_certs,omitempty"`
	Status           string        `json:"status,omitempty"`
	ResourceLocation string        `json:"resource_location,omitempty"`
	MissionLocation  string        `json:"mission_location,omitempty"`
	MaintenanceDue   *model.Date   `json:"maintenance_due,omitempty"`
	MissionStart     *model.Date   `json:"mission_start,omitempty"`
}

// Skip records a record that a rule could not evaluate.
type Skip struct {
	Kind       Kind   `json:"kind"`
	ResourceID string `json:"resource_id,omitempty"`
	MissionID  string `json:"mission_id,omitempty"`
	Reason     string `json:"reason"`
}

// Input is what every rule sees.
type Input struct {
	Snapshot     *model.Snapshot
	Availability availability.Checker
}

// Rule is one independent conflict check.
type Rule interface {
	Kind() Kind
	Evaluate(ctx context.Context, in Input) ([]Finding, []Skip)
}

// Report is the full outcome of one detection pass.
type Report struct {
	Findings []Finding `json:"findings"`
	Skips    []Skip    `json:"skips"`
}

// Detector runs the rule battery.
type Detector struct {
	rules     []Rule
	lookahead int
	logger    logger.Logger
}

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithMaintenanceLookahead flags drones whose maintenance falls up to days
// after the mission start. Negative values are ignored.
func WithMaintenanceLookahead(days int) Option {
	return func(d *Detector) {
		if days >= 0 {
			d.lookahead = days
		}
	}
}

// WithLogger sets the logger used to report skipped records.
func WithLogger(l logger.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDetector builds a detector with the built-in rule battery.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{logger: logger.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	d.Register(NewDoubleBookingRule())
	d.Register(NewSkillCertRule())
	d.Register(NewUnavailableAssignmentRule())
	d.Register(NewLocationRule())
	d.Register(NewMaintenanceRule(d.lookahead))
	return d
}

func (d *Detector) ruleKinds() []string {
	out := make([]string, 0, len(d.rules))
	for _, r := range d.rules {
		out = append(out, string(r.Kind()))
	}
	return out
}

// Register appends a rule to the battery.
func (d *Detector) Register(rule Rule) {
	d.rules = append(d.rules, rule)
}

// Run evaluates every rule against snap and returns ordered findings plus skips.
// It is safe for concurrent use as long as snap is not mutated.
func (d *Detector) Run(ctx context.Context, snap *model.Snapshot) Report {
	in := Input{Snapshot: snap, Availability: availability.NewEvaluator(snap)}
	var rep Report
	for _, rule := range d.rules {
		findings, skips := rule.Evaluate(ctx, in)
		rep.Findings = append(rep.Findings, findings...)
		for _, s := range skips {
			d.logger.Debug(ctx, "record skipped by check",
				logger.String("check", string(s.Kind)),
				logger.String("mission_id", s.MissionID),
				logger.String("resource_id", s.ResourceID),
				logger.String("reason", s.Reason),
			)
		}
		rep.Skips = append(rep.Skips, skips...)
	}
	Sort(rep.Findings)
	if rep.Findings == nil {
		rep.Findings = []Finding{}
	}
	d.logger.Debug(ctx, "checks completed",
		logger.Strings("checks", d.ruleKinds()),
		logger.Int("findings", len(rep.Findings)),
		logger.Int("skips", len(rep.Skips)),
	)
	return rep
}

// Detect returns only the ordered findings of Run.
func (d *Detector) Detect(ctx context.Context, snap *model.Snapshot) []Finding {
	return d.Run(ctx, snap).Findings
}

func kindRank(k Kind) int {
	if i := slices.Index(Kinds, k); i >= 0 {
		return i
	}
	return len(Kinds)
}

// Sort orders findings by kind (reporting order, then name for custom kinds),
// mission id, resource ids and related mission id.
func Sort(fs []Finding) {
	slices.SortStableFunc(fs, func(a, b Finding) int {
		return cmp.Or(
			cmp.Compare(kindRank(a.Kind), kindRank(b.Kind)),
			strings.Compare(string(a.Kind), string(b.Kind)),
			strings.Compare(a.MissionID, b.MissionID),
			slices.Compare(a.ResourceIDs, b.ResourceIDs),
			strings.Compare(a.RelatedMissionID, b.RelatedMissionID),
		)
	})
}

// Filter returns the findings of the given kind.
func Filter(fs []Finding, kind Kind) []Finding {
	out := []Finding{}
	for _, f := range fs {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func datePtr(d model.Date) *model.Date { return &d }
