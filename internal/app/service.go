// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/flightdesk/internal/adapters/repository"
	"github.com/okian/flightdesk/internal/domain/availability"
	"github.com/okian/flightdesk/internal/domain/conflict"
	"github.com/okian/flightdesk/internal/domain/model"
	"github.com/okian/flightdesk/internal/domain/normalize"
	"github.com/okian/flightdesk/internal/domain/scoring"
	"github.com/okian/flightdesk/internal/domain/summary"
	"github.com/okian/flightdesk/internal/domain/types"
	"github.com/okian/flightdesk/pkg/logger"
	"github.com/okian/flightdesk/pkg/metrics"
)

const defaultTopN = 3

// loaded is the normalized form of the current revision.
type loaded struct {
	id       string
	loadedAt time.Time
	snap     *model.Snapshot
	eval     *availability.Evaluator
	warnings []normalize.Warning
}

func (l *loaded) info() types.RevisionInfo {
	warnings := l.warnings
	if warnings == nil {
		warnings = []normalize.Warning{}
	}
	return types.RevisionInfo{
		Revision: l.id,
		LoadedAt: l.loadedAt,
		Counts: types.Counts{
			Pilots:   len(l.snap.Pilots()),
			Drones:   len(l.snap.Drones()),
			Missions: len(l.snap.Missions()),
		},
		Warnings: warnings,
	}
}

// Service implements the API dependencies for the scheduling engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store     repository.Store
	ownsStore bool
	detector  *conflict.Detector
	scorer    *scoring.Scorer

	// Configuration
	weights     scoring.Weights
	lookahead   int
	defaultTopN int
	historySize int
	now         func() time.Time

	// State
	started bool
	current *loaded

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the revision store. The service closes it on Stop.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithWeights sets the scoring weights. They are validated on Start.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		s.weights = w
	}
}

// WithMaintenanceLookahead sets how many days past a mission start a
// maintenance due date still counts as a conflict.
func WithMaintenanceLookahead(days int) Option {
	return func(s *Service) {
		if days >= 0 {
			s.lookahead = days
		}
	}
}

// WithDefaultTopN sets the ranking size used when a request gives none.
func WithDefaultTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.defaultTopN = n
		}
	}
}

// WithHistorySize sets the retention of the default in-memory store.
func WithHistorySize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historySize = n
		}
	}
}

// WithClock overrides the time source used for revision stamps and "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		weights:     scoring.DefaultWeights(),
		defaultTopN: defaultTopN,
		now:         time.Now,
		logger:      nil, // replaced on Start
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the engine components and restores the newest stored revision.
// Invalid scoring weights are reported here as a *scoring.ConfigurationError.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting flightdesk service...")

	scorer, err := scoring.New(s.weights, scoring.WithLogger(s.logger.Named("scoring")))
	if err != nil {
		return err
	}
	s.scorer = scorer
	s.detector = conflict.NewDetector(
		conflict.WithMaintenanceLookahead(s.lookahead),
		conflict.WithLogger(s.logger.Named("conflict")),
	)
	if s.store == nil {
		s.store = repository.NewMemoryStore(repository.WithHistorySize(s.historySize))
		s.ownsStore = true
		s.logger.Info(ctx, "using in-memory revision store")
	}

	rev, err := s.store.Current(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return fmt.Errorf("restore current revision: %w", err)
	default:
		s.current = s.normalize(ctx, rev)
		s.publish(ctx)
		s.logger.Info(ctx, "restored snapshot revision",
			logger.String("revision", rev.ID),
			logger.Int("warnings", len(s.current.warnings)),
		)
	}

	s.started = true
	s.logger.Info(ctx, "flightdesk service started",
		logger.Int("defaultTopN", s.defaultTopN),
		logger.Int("maintenanceLookaheadDays", s.lookahead),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping flightdesk service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing revision store", logger.Error(err))
		}
	}
	// A store built by Start is rebuilt by the next Start. A closed store
	// supplied through WithStore cannot be reopened.
	if s.ownsStore {
		s.store, s.ownsStore = nil, false
		s.current = nil
	}

	s.started = false
	s.logger.Info(context.Background(), "flightdesk service stopped")
}

func (s *Service) normalize(ctx context.Context, rev repository.Revision) *loaded {
	res := normalize.Normalize(ctx, rev.Raw)
	return &loaded{
		id:       rev.ID,
		loadedAt: rev.LoadedAt,
		snap:     res.Snapshot,
		eval:     availability.NewEvaluator(res.Snapshot),
		warnings: res.Warnings,
	}
}

// publish updates the gauges describing the current revision. Callers hold mu.
func (s *Service) publish(ctx context.Context) {
	metrics.UpdateSnapshotRecords(len(s.current.snap.Pilots()), len(s.current.snap.Drones()), len(s.current.snap.Missions()))
	metrics.UpdateStoredRevisions(s.store.Count(ctx))
}

// LoadSnapshot normalizes raw, stores it as a new revision and makes it current.
// Data-quality problems never fail the load; they are returned as warnings.
func (s *Service) LoadSnapshot(ctx context.Context, raw model.RawSnapshot) (types.RevisionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return types.RevisionInfo{}, ErrNotStarted
	}

	rev := repository.Revision{ID: uuid.NewString(), LoadedAt: s.now().UTC(), Raw: raw}
	next := s.normalize(ctx, rev)

	if err := s.store.Put(ctx, rev); err != nil {
		metrics.RecordErrorByComponent("service", "store_put")
		return types.RevisionInfo{}, fmt.Errorf("store revision: %w", err)
	}
	s.current = next

	log := s.logger.With(logger.String("revision", rev.ID))
	for _, w := range next.warnings {
		metrics.RecordParseWarning(w.Entity)
		log.Warn(ctx, "snapshot parse warning",
			logger.String("entity", w.Entity),
			logger.Int("row", w.Row),
			logger.String("record_id", w.RecordID),
			logger.String("field", w.Field),
			logger.String("message", w.Message),
		)
	}
	metrics.RecordSnapshotLoad(rev.LoadedAt.Unix())
	s.publish(ctx)

	info := next.info()
	log.Info(ctx, "snapshot loaded",
		logger.Int("pilots", info.Counts.Pilots),
		logger.Int("drones", info.Counts.Drones),
		logger.Int("missions", info.Counts.Missions),
		logger.Int("warnings", len(info.Warnings)),
	)
	return info, nil
}

// snapshot returns the current revision under the read lock.
func (s *Service) snapshot() (*loaded, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	if s.current == nil {
		return nil, ErrNoSnapshot
	}
	return s.current, nil
}

// Current returns metadata of the current revision.
func (s *Service) Current(_ context.Context) (types.RevisionInfo, error) {
	cur, err := s.snapshot()
	if err != nil {
		return types.RevisionInfo{}, err
	}
	return cur.info(), nil
}

// Revision re-normalizes a retained revision and returns its metadata.
func (s *Service) Revision(ctx context.Context, id string) (types.RevisionInfo, error) {
	s.mu.RLock()
	started, store := s.started, s.store
	s.mu.RUnlock()
	if !started {
		return types.RevisionInfo{}, ErrNotStarted
	}

	rev, err := store.Get(ctx, id)
	if err != nil {
		return types.RevisionInfo{}, err
	}
	return s.normalize(ctx, rev).info(), nil
}

// Conflicts runs every check against the current snapshot. A non-empty kind
// restricts the findings to that kind.
func (s *Service) Conflicts(ctx context.Context, kind string) (types.ConflictReport, error) {
	if kind != "" && !slices.Contains(conflict.Kinds, conflict.Kind(kind)) {
		return types.ConflictReport{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	cur, err := s.snapshot()
	if err != nil {
		return types.ConflictReport{}, err
	}

	start := time.Now()
	rep := s.detector.Run(ctx, cur.snap)
	elapsed := time.Since(start)
	metrics.RecordDetectionLatency(float64(elapsed.Microseconds()) / 1000)
	s.logger.Debug(ctx, "conflict detection finished",
		logger.String("revision", cur.id),
		logger.Duration("elapsed", elapsed),
	)
	for _, f := range rep.Findings {
		metrics.RecordConflict(string(f.Kind))
	}
	for _, sk := range rep.Skips {
		metrics.RecordCheckSkip(string(sk.Kind))
	}

	findings := rep.Findings
	if kind != "" {
		findings = conflict.Filter(findings, conflict.Kind(kind))
	}
	return types.ConflictReport{Revision: cur.id, Findings: findings, Skipped: len(rep.Skips)}, nil
}

func (s *Service) topN(n int) int {
	if n <= 0 {
		return s.defaultTopN
	}
	return n
}

// Candidates ranks every pilot for a mission. topN <= 0 uses the configured default.
func (s *Service) Candidates(ctx context.Context, missionID string, topN int) (types.CandidateList, error) {
	cur, err := s.snapshot()
	if err != nil {
		return types.CandidateList{}, err
	}
	m, ok := cur.snap.Mission(missionID)
	if !ok {
		return types.CandidateList{}, fmt.Errorf("%w: %s", ErrMissionNotFound, missionID)
	}
	return types.CandidateList{
		Revision:    cur.id,
		MissionID:   m.ID,
		Suggestions: s.rank(ctx, cur, m, topN),
	}, nil
}

func (s *Service) rank(ctx context.Context, cur *loaded, m model.Mission, topN int) []scoring.Suggestion {
	start := time.Now()
	out := s.scorer.Rank(ctx, scoring.Input{
		Mission:      m,
		Pool:         cur.snap.Pilots(),
		TopN:         s.topN(topN),
		Availability: cur.eval,
	})
	elapsed := time.Since(start)
	metrics.RecordRankingLatency(float64(elapsed.Microseconds()) / 1000)
	s.logger.Debug(ctx, "ranking finished",
		logger.String("mission_id", m.ID),
		logger.Duration("elapsed", elapsed),
	)
	return out
}

// Assess scores a single pilot for a mission.
func (s *Service) Assess(_ context.Context, missionID, pilotID string) (scoring.Suggestion, error) {
	cur, err := s.snapshot()
	if err != nil {
		return scoring.Suggestion{}, err
	}
	m, ok := cur.snap.Mission(missionID)
	if !ok {
		return scoring.Suggestion{}, fmt.Errorf("%w: %s", ErrMissionNotFound, missionID)
	}
	p, ok := cur.snap.Pilot(pilotID)
	if !ok {
		return scoring.Suggestion{}, fmt.Errorf("%w: %s", ErrPilotNotFound, pilotID)
	}
	return s.scorer.Assess(m, p, cur.eval), nil
}

// Urgent returns the best candidates for every urgent mission, ordered by mission id.
func (s *Service) Urgent(ctx context.Context, topN int) ([]types.UrgentMission, error) {
	cur, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	out := []types.UrgentMission{}
	for _, m := range cur.snap.Missions() {
		if !m.Urgent() {
			continue
		}
		out = append(out, types.UrgentMission{
			MissionID:   m.ID,
			Client:      m.Client,
			Location:    m.Location,
			Start:       m.Start,
			End:         m.End,
			Suggestions: s.rank(ctx, cur, m, topN),
		})
	}
	slices.SortFunc(out, func(a, b types.UrgentMission) int { return strings.Compare(a.MissionID, b.MissionID) })
	return out, nil
}

// Summary counts the current snapshot as of day. An absent day means today.
func (s *Service) Summary(_ context.Context, day model.Date) (summary.Summary, error) {
	cur, err := s.snapshot()
	if err != nil {
		return summary.Summary{}, err
	}
	return summary.Build(cur.snap, s.today(day)), nil
}

// today resolves an absent day to the service clock.
func (s *Service) today(day model.Date) model.Date {
	if day.IsAbsent() {
		return model.KnownDate(s.now().UTC())
	}
	return day
}

// Mission returns a mission with its phase on day and the pilots and drones
// linked to it from either side. An absent day means today.
func (s *Service) Mission(_ context.Context, missionID string, day model.Date) (types.MissionDetail, error) {
	cur, err := s.snapshot()
	if err != nil {
		return types.MissionDetail{}, err
	}
	m, ok := cur.snap.Mission(missionID)
	if !ok {
		return types.MissionDetail{}, fmt.Errorf("%w: %s", ErrMissionNotFound, missionID)
	}
	day = s.today(day)

	w := m.Window()
	link := func(r model.Resource, location string) types.LinkedResource {
		return types.LinkedResource{
			Kind:         r.ResourceKind(),
			ID:           r.ResourceID(),
			Location:     location,
			Status:       r.StatusLabel(),
			Availability: cur.eval.Check(r, w),
		}
	}
	d := types.MissionDetail{
		Revision: cur.id,
		Day:      day,
		Phase:    summary.MissionPhase(m, day),
		Mission:  m,
		Pilots:   []types.LinkedResource{},
		Drones:   []types.LinkedResource{},
	}
	for _, p := range cur.snap.AssignedPilots(m) {
		d.Pilots = append(d.Pilots, link(p, p.Location))
	}
	for _, dr := range cur.snap.AssignedDrones(m) {
		d.Drones = append(d.Drones, link(dr, dr.Location))
	}
	return d, nil
}

// Drones lists drones matching q, ordered by id, with their availability for
// the named mission or, without one, for q.Day (absent means today).
func (s *Service) Drones(ctx context.Context, q types.DroneQuery) (types.DroneList, error) {
	cur, err := s.snapshot()
	if err != nil {
		return types.DroneList{}, err
	}
	var w model.Window
	if q.MissionID != "" {
		m, ok := cur.snap.Mission(q.MissionID)
		if !ok {
			return types.DroneList{}, fmt.Errorf("%w: %s", ErrMissionNotFound, q.MissionID)
		}
		w = m.Window()
	} else {
		day := s.today(q.Day)
		w = model.Window{Start: day, End: day}
	}

	out := types.DroneList{Revision: cur.id, Window: w, Drones: []types.DroneAvailability{}}
	for _, d := range cur.snap.Drones() {
		if q.Capability != "" && !d.Capabilities.Contains(q.Capability) {
			continue
		}
		if q.Location != "" && !model.EqualFold(q.Location, d.Location) {
			continue
		}
		res := cur.eval.Check(d, w)
		if q.AvailableOnly && !res.Available {
			continue
		}
		out.Drones = append(out.Drones, types.DroneAvailability{Drone: d, Availability: res})
	}
	slices.SortFunc(out.Drones, func(a, b types.DroneAvailability) int { return strings.Compare(a.Drone.ID, b.Drone.ID) })

	s.logger.Debug(ctx, "drone listing",
		logger.String("capability", q.Capability),
		logger.String("location", q.Location),
		logger.Bool("available_only", q.AvailableOnly),
		logger.Int("matched", len(out.Drones)),
	)
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":                  s.started,
		"defaultTopN":              s.defaultTopN,
		"maintenanceLookaheadDays": s.lookahead,
		"weights":                  s.weights,
	}

	if s.started {
		stats["storedRevisions"] = s.store.Count(context.Background())
	}
	if s.current != nil {
		stats["revision"] = s.current.id
		stats["loadedAt"] = s.current.loadedAt
		stats["pilots"] = len(s.current.snap.Pilots())
		stats["drones"] = len(s.current.snap.Drones())
		stats["missions"] = len(s.current.snap.Missions())
		stats["warnings"] = len(s.current.warnings)
	}

	return stats
}
