// Package scoring ranks pilots for a mission with an explainable additive score.
package scoring

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/okian/flightdesk/internal/domain/availability"
	"github.com/okian/flightdesk/internal/domain/model"
	"github.com/okian/flightdesk/pkg/logger"
)

// Suggestion is one ranked candidate with the reasons behind its score.
type Suggestion struct {
	PilotID           string              `json:"pilot_id"`
	Name              string              `json:"name,omitempty"`
	Score             float64             `json:"score"`
	MatchedReasons    []string            `json:"matched_reasons"`
	FailedConstraints []string            `json:"failed_constraints"`
	PerfectMatch      bool                `json:"perfect_match"`
	Availability      availability.Result `json:"availability"`
}

// Input is a ranking request.
type Input struct {
	Mission      model.Mission
	Pool         []model.Pilot
	TopN         int
	Availability availability.Checker
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithLogger sets the logger used for ranking diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *Scorer) {
		if l != nil {
			s.logger = l
		}
	}
}

// Scorer computes fitness scores from validated weights.
type Scorer struct {
	weights Weights
	logger  logger.Logger
}

// New creates a scorer. Invalid weights yield a *ConfigurationError.
func New(w Weights, opts ...Option) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{weights: w, logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Weights returns the scorer's configuration.
func (s *Scorer) Weights() Weights { return s.weights }

// fraction is |have ∩ required| / max(1, |required|).
func fraction(required, have model.Set) float64 {
	return float64(required.CountIn(have)) / float64(max(1, required.Len()))
}

// Assess scores a single pilot against a mission. Unmet requirements are
// listed in FailedConstraints whatever the score.
func (s *Scorer) Assess(m model.Mission, p model.Pilot, checker availability.Checker) Suggestion {
	sg := Suggestion{
		PilotID:           p.ID,
		Name:              p.Name,
		MatchedReasons:    []string{},
		FailedConstraints: []string{},
	}
	matched := func(format string, a ...any) { sg.MatchedReasons = append(sg.MatchedReasons, fmt.Sprintf(format, a...)) }
	failed := func(format string, a ...any) { sg.FailedConstraints = append(sg.FailedConstraints, fmt.Sprintf(format, a...)) }

	sg.Score += s.weights.Skill * fraction(m.RequiredSkills, p.Skills)
	s.explainSet("skill", "skills", m.RequiredSkills, p.Skills, matched, failed)

	sg.Score += s.weights.Cert * fraction(m.RequiredCerts, p.Certifications)
	s.explainSet("cert", "certifications", m.RequiredCerts, p.Certifications, matched, failed)

	switch {
	case m.Location == "" || p.Location == "":
		failed("location unknown")
	case model.EqualFold(m.Location, p.Location):
		sg.Score += s.weights.Location
		matched("same location (%s)", p.Location)
	default:
		failed("location mismatch: pilot in %s, mission in %s", p.Location, m.Location)
	}

	sg.Availability = checker.Check(p, m.Window())
	switch {
	case !sg.Availability.Available:
		failed("unavailable: %s", sg.Availability.Reason)
	case sg.Availability.Caveat != "":
		sg.Score += s.weights.Availability
		matched("assumed available (%s)", sg.Availability.Caveat)
	default:
		sg.Score += s.weights.Availability
		matched("available for mission window")
	}

	sg.Score = quantize(sg.Score)
	sg.PerfectMatch = len(sg.FailedConstraints) == 0
	return sg
}

// scoreScale is the resolution scores are rounded to, so that sums which are
// equal on paper compare equal and fall through to the pilot-id tie-break.
const scoreScale = 1e9

func quantize(v float64) float64 { return math.Round(v*scoreScale) / scoreScale }

func (s *Scorer) explainSet(singular, plural string, required, have model.Set, matched, failed func(string, ...any)) {
	if required.Len() == 0 {
		matched("no %s required", plural)
		return
	}
	missing := required.Missing(have)
	got := required.Len() - len(missing)
	switch {
	case len(missing) == 0:
		matched("all required %s (%d/%d)", plural, got, required.Len())
	case got > 0:
		matched("%s %d/%d", plural, got, required.Len())
	}
	for _, name := range missing {
		failed("missing %s: %s", singular, name)
	}
}

// Rank scores every pilot in the pool and returns at most TopN suggestions,
// highest score first, ties broken by ascending pilot id. Pilots failing
// constraints are kept and explained, never filtered out.
func (s *Scorer) Rank(ctx context.Context, in Input) []Suggestion {
	out := make([]Suggestion, 0, len(in.Pool))
	if in.TopN <= 0 || len(in.Pool) == 0 {
		return out
	}
	for _, p := range in.Pool {
		out = append(out, s.Assess(in.Mission, p, in.Availability))
	}
	slices.SortStableFunc(out, func(a, b Suggestion) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			strings.Compare(a.PilotID, b.PilotID),
		)
	})
	if len(out) > in.TopN {
		out = out[:in.TopN]
	}
	fields := []logger.Field{
		logger.String("mission_id", in.Mission.ID),
		logger.Int("pool", len(in.Pool)),
		logger.Int("returned", len(out)),
	}
	if len(out) > 0 {
		fields = append(fields, logger.String("top_pilot", out[0].PilotID), logger.Float64("top_score", out[0].Score))
	}
	s.logger.Debug(ctx, "ranked candidates", fields...)
	return out
}
