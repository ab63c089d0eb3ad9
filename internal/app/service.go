// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/robfig/cron/v3"

	"github.com/okian/festgrid/internal/adapters/export/ics"
	"github.com/okian/festgrid/internal/adapters/repository"
	"github.com/okian/festgrid/internal/domain/layout"
	"github.com/okian/festgrid/internal/domain/model"
	"github.com/okian/festgrid/internal/domain/timeslot"
	"github.com/okian/festgrid/internal/domain/zoom"
	"github.com/okian/festgrid/pkg/logger"
	"github.com/okian/festgrid/pkg/metrics"
)

// Service implements the API dependencies for the festival schedule.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	resolver *layout.Resolver
	prefs    zoom.KV
	hint     *zoom.HintFlag
	exporter *ics.Exporter

	// Configuration
	eventsFile   string
	loc          *time.Location
	friday       time.Time
	now          func() time.Time
	rowHeight    float64
	headerHeight float64

	// State
	snapshot atomic.Pointer[layout.Snapshot]
	layoutMu sync.Mutex
	reloader *cron.Cron
	started  bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		resolver:     layout.NewResolver(),
		loc:          time.UTC,
		friday:       time.Date(2026, time.June, 19, 0, 0, 0, 0, time.UTC),
		now:          time.Now,
		rowHeight:    zoom.DefaultRowHeight,
		headerHeight: zoom.DefaultHeaderHeight,
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		// NewMemoryStore only fails on invalid seed events.
		s.store, _ = repository.NewMemoryStore()
	}
	s.exporter = ics.NewExporter(s.friday, ics.WithLocation(s.loc), ics.WithClock(s.now))
	return s
}

// Start loads the seed file and the persisted hint flag, then computes the
// first layout.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting schedule service...")

	if s.eventsFile != "" {
		events, err := repository.LoadEventsFile(s.eventsFile)
		if err != nil {
			return err
		}
		if err := s.store.Replace(ctx, events); err != nil {
			return fmt.Errorf("seed %s: %w", s.eventsFile, err)
		}
		s.logger.Info(ctx, "loaded events file",
			logger.String("path", s.eventsFile),
			logger.Int("events", len(events)),
		)
	}

	if s.prefs != nil {
		hint, err := zoom.LoadHintFlag(ctx, s.prefs)
		if err != nil {
			return fmt.Errorf("load zoom hint flag: %w", err)
		}
		s.hint = hint
	}

	snap, err := s.Layout(ctx)
	if err != nil {
		return err
	}

	s.started = true
	s.logger.Info(ctx, "schedule service started",
		logger.Int("positioned", len(snap.Events)),
		logger.Int("dropped", len(snap.Diagnostics)),
	)
	return nil
}

// Stop stops the reload job.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.reloader != nil {
		<-s.reloader.Stop().Done()
		s.reloader = nil
	}
	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping schedule service...")
	s.started = false
	s.logger.Info(context.Background(), "schedule service stopped")
}

// Events returns all stored events.
func (s *Service) Events(ctx context.Context) ([]model.Event, error) {
	return s.store.List(ctx)
}

// Event returns one stored event.
func (s *Service) Event(ctx context.Context, id string) (model.Event, error) {
	return s.store.Get(ctx, id)
}

// UpsertEvent stores ev and recomputes the layout.
func (s *Service) UpsertEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	stored, err := s.store.Upsert(ctx, ev)
	if err != nil {
		return model.Event{}, err
	}
	if _, err := s.Layout(ctx); err != nil {
		return stored, err
	}
	return stored, nil
}

// DeleteEvent removes an event and recomputes the layout.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	_, err := s.Layout(ctx)
	return err
}

// ReplaceEvents swaps the whole event list and recomputes the layout.
func (s *Service) ReplaceEvents(ctx context.Context, events []model.Event) error {
	if err := s.store.Replace(ctx, events); err != nil {
		return err
	}
	_, err := s.Layout(ctx)
	return err
}

// Layout returns the layout of the current event list. A list identical to
// the last one laid out reuses its snapshot.
func (s *Service) Layout(ctx context.Context) (*layout.Snapshot, error) {
	if cur, ok, err := s.cachedLayout(ctx); err != nil || ok {
		return cur, err
	}

	// The list is read again under layoutMu so a snapshot is never replaced
	// by one built from an older list.
	s.layoutMu.Lock()
	defer s.layoutMu.Unlock()
	events, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	fp, err := fingerprint(events)
	if err != nil {
		return nil, err
	}
	if cur := s.snapshot.Load(); cur != nil && cur.Fingerprint == fp {
		metrics.RecordSnapshotCacheHit()
		return cur, nil
	}

	start := time.Now()
	res := s.resolver.Resolve(events)
	metrics.RecordLayoutRun(float64(time.Since(start).Microseconds()) / 1000)
	metrics.UpdateLayoutShape(len(res.Events), res.Groups, res.MaxLanes)

	for _, d := range res.Diagnostics {
		metrics.RecordDroppedEvent(d.Reason)
		s.logger.Warn(ctx, "event dropped from layout",
			logger.String("id", d.EventID),
			logger.String("title", d.Title),
			logger.String("time", d.Time),
			logger.String("venue", string(d.Venue)),
			logger.String("reason", d.Reason),
			logger.Error(d.Err),
		)
	}

	snap := &layout.Snapshot{Fingerprint: fp, ComputedAt: s.now(), Result: res}
	s.snapshot.Store(snap)
	s.logger.Debug(ctx, "layout recomputed",
		logger.Int("positioned", len(res.Events)),
		logger.Int("groups", res.Groups),
		logger.Int("max_lanes", res.MaxLanes),
	)
	return snap, nil
}

// cachedLayout returns the current snapshot when it matches the stored list.
func (s *Service) cachedLayout(ctx context.Context) (*layout.Snapshot, bool, error) {
	cur := s.snapshot.Load()
	if cur == nil {
		return nil, false, nil
	}
	events, err := s.store.List(ctx)
	if err != nil {
		return nil, false, err
	}
	fp, err := fingerprint(events)
	if err != nil {
		return nil, false, err
	}
	if cur.Fingerprint != fp {
		return nil, false, nil
	}
	metrics.RecordSnapshotCacheHit()
	return cur, true, nil
}

// fingerprint hashes the JSON form of events.
func fingerprint(events []model.Event) (uint64, error) {
	d := xxhash.New()
	if err := json.NewEncoder(d).Encode(events); err != nil {
		return 0, fmt.Errorf("fingerprint events: %w", err)
	}
	return d.Sum64(), nil
}

// Slots returns the 50 hourly slots of the festival window.
func (s *Service) Slots() []timeslot.Slot {
	return timeslot.Build()
}

// ScrollTarget computes the scroll position for req.
func (s *Service) ScrollTarget(_ context.Context, req zoom.ScrollRequest) (zoom.ScrollTarget, error) {
	if req.ViewportHeight < 0 {
		return zoom.ScrollTarget{}, fmt.Errorf("%w: negative viewport height", zoom.ErrInvalidScrollRequest)
	}
	z := req.Zoom
	if z == 0 {
		z = 1
	}
	z = zoom.Clamp(z)

	slot := timeslot.Invalid
	switch {
	case req.Slot != nil:
		if _, ok := timeslot.At(*req.Slot); !ok {
			return zoom.ScrollTarget{}, fmt.Errorf("%w: slot %d", zoom.ErrInvalidScrollRequest, *req.Slot)
		}
		slot = *req.Slot
	case req.Day != "":
		slot = timeslot.DayStart(req.Day)
		if slot == timeslot.Invalid {
			return zoom.ScrollTarget{}, fmt.Errorf("%w: %w: %q", zoom.ErrInvalidScrollRequest, zoom.ErrUnknownDay, req.Day)
		}
	case req.Now:
		slot = timeslot.IndexAt(s.now().In(s.loc))
		if slot == timeslot.Invalid {
			return zoom.ScrollTarget{Slot: timeslot.Invalid, Zoom: z}, nil
		}
	default:
		return zoom.ScrollTarget{}, fmt.Errorf("%w: one of slot, day or now is required", zoom.ErrInvalidScrollRequest)
	}

	info, _ := timeslot.At(slot)
	return zoom.ScrollTarget{
		Found:     true,
		Slot:      slot,
		Day:       info.Day,
		Label:     info.Label,
		Zoom:      z,
		ScrollTop: zoom.ScrollTopFor(slot, z, req.ViewportHeight, s.rowHeight, s.headerHeight),
	}, nil
}

// Geometry returns the base row and header height in px.
func (s *Service) Geometry() (rowHeight, headerHeight float64) {
	return s.rowHeight, s.headerHeight
}

// HintDismissed reports whether the zoom hint was dismissed.
func (s *Service) HintDismissed() bool {
	s.mu.RLock()
	hint := s.hint
	s.mu.RUnlock()
	return hint != nil && hint.Dismissed()
}

// DismissHint persists the dismissed zoom hint.
func (s *Service) DismissHint(ctx context.Context) error {
	s.mu.RLock()
	hint := s.hint
	s.mu.RUnlock()
	if hint == nil {
		return zoom.ErrHintUnavailable
	}
	wrote, err := hint.Dismiss(ctx)
	if err != nil {
		return err
	}
	if wrote {
		metrics.RecordHintDismissal()
		s.logger.Info(ctx, "zoom hint dismissed")
	}
	return nil
}

// ExportICS writes the current layout as an iCalendar feed.
func (s *Service) ExportICS(ctx context.Context, w io.Writer) error {
	snap, err := s.Layout(ctx)
	if err != nil {
		return err
	}
	if err := s.exporter.Write(w, snap.Events); err != nil {
		return err
	}
	metrics.RecordCalendarExport()
	return nil
}

// StartReload re-reads the events file on the cron schedule spec.
func (s *Service) StartReload(ctx context.Context, spec string) error {
	if s.eventsFile == "" {
		return ErrNoEventsFile
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reloader != nil {
		<-s.reloader.Stop().Done()
	}

	c := cron.New(cron.WithLocation(s.loc))
	if _, err := c.AddFunc(spec, func() {
		_ = s.Reload(ctx)
	}); err != nil {
		return fmt.Errorf("reload schedule %q: %w", spec, err)
	}
	c.Start()
	s.reloader = c
	s.logger.Info(ctx, "events reload scheduled",
		logger.String("cron", spec),
		logger.String("path", s.eventsFile),
	)
	return nil
}

// Reload re-reads the events file and replaces the store content.
func (s *Service) Reload(ctx context.Context) error {
	if s.eventsFile == "" {
		return ErrNoEventsFile
	}
	events, err := repository.LoadEventsFile(s.eventsFile)
	if err == nil {
		err = s.ReplaceEvents(ctx, events)
	}
	if err != nil {
		metrics.RecordSeedReload("error")
		s.logger.Error(ctx, "events reload failed",
			logger.String("path", s.eventsFile),
			logger.Error(err),
		)
		return err
	}
	metrics.RecordSeedReload("ok")
	s.logger.Info(ctx, "events reloaded",
		logger.String("path", s.eventsFile),
		logger.Int("events", len(events)),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stored := s.store.Count(ctx)
	stats := map[string]interface{}{
		"started":        s.started,
		"storedEvents":   stored,
		"reloadEnabled":  s.reloader != nil,
		"hintDismissed":  s.hint != nil && s.hint.Dismissed(),
		"timezone":       s.loc.String(),
		"festivalFriday": s.friday.Format(time.DateOnly),
	}
	if snap := s.snapshot.Load(); snap != nil {
		stats["positionedEvents"] = len(snap.Events)
		stats["droppedEvents"] = len(snap.Diagnostics)
		stats["overlapGroups"] = snap.Groups
		stats["maxLanes"] = snap.MaxLanes
		stats["fingerprint"] = fmt.Sprintf("%016x", snap.Fingerprint)
		stats["computedAt"] = snap.ComputedAt.Format(time.RFC3339)
	}

	metrics.UpdateStoredEvents(stored)
	return stats
}
