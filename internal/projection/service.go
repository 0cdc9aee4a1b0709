// Package projection orchestrates streak recomputation: it composes the
// event log, projection cache, profile store and holiday calendar into the
// read path that serves streak state and its audit trail.
package projection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	v1 "github.com/scriptoria-lab/project-scriptoria/internal/api/v1"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
	"github.com/scriptoria-lab/project-scriptoria/internal/streak"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid streak query")

// Options tunes the orchestrator. Zero values fall back to defaults.
type Options struct {
	Policy streak.Policy

	// DefaultTimezone applies when a profile has no timezone set.
	DefaultTimezone string

	// HolidayWindowDays bounds the trailing holiday fetch window.
	HolidayWindowDays int

	// WriteTimeout caps the detached write-behind persistence call.
	WriteTimeout time.Duration
}

func (o Options) normalized() Options {
	if o.DefaultTimezone == "" {
		o.DefaultTimezone = "UTC"
	}
	if o.HolidayWindowDays <= 0 {
		o.HolidayWindowDays = 28 // 4 weeks
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	return o
}

// Service implements the streak projection read path.
type Service struct {
	events   storage.EventStore
	cache    storage.ProjectionCache
	profiles storage.ProfileStore
	holidays storage.HolidayCalendar
	opts     Options
	nowFn    func() time.Time

	// persisted is signalled after every write-behind attempt; tests hook it.
	persisted func(userID string, err error)
}

// NewService creates a new projection service.
func NewService(
	events storage.EventStore,
	cache storage.ProjectionCache,
	profiles storage.ProfileStore,
	holidays storage.HolidayCalendar,
	opts Options,
) *Service {
	return &Service{
		events:   events,
		cache:    cache,
		profiles: profiles,
		holidays: holidays,
		opts:     opts.normalized(),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// environment bundles the collaborator reads every evaluation needs.
type environment struct {
	projection *streak.StreamProjection
	lastSeq    int64
	loc        *time.Location
	today      calendar.DayKey
	yesterday  calendar.DayKey
}

// ComputeUserStreakProjection recomputes the user's streak projection from
// the cached checkpoint plus delta events, persists it write-behind, and
// returns it.
func (s *Service) ComputeUserStreakProjection(ctx context.Context, userID string) (*streak.StreamProjection, error) {
	if userID == "" {
		return nil, invalidQueryf("uid is required")
	}

	env, err := s.loadEnvironment(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Fast path: no new real events and virtual evaluation already covers
	// through yesterday, so the checkpoint is current.
	if env.lastSeq == env.projection.AppliedSeq &&
		!env.projection.LastEvaluatedDayKey.Before(env.yesterday) {
		return env.projection, nil
	}

	delta, err := s.events.LoadDeltaEvents(ctx, userID, env.projection.AppliedSeq)
	if err != nil {
		return nil, fmt.Errorf("load delta events: %w", err)
	}

	merged, holidayMap, endKey, err := s.assembleStream(ctx, userID, env.projection, delta, env)
	if err != nil {
		return nil, err
	}

	reducer := streak.NewReducer(s.opts.Policy, env.loc, holidayMap)
	next, err := reducer.Fold(env.projection, merged)
	if err != nil {
		return nil, fmt.Errorf("fold projection: %w", err)
	}

	// The reducer only advances the cursor on virtual closures; a window
	// where every day had activity still counts as evaluated, otherwise the
	// fast path never engages for daily posters.
	next.LastEvaluatedDayKey = calendar.MaxKey(next.LastEvaluatedDayKey, endKey)

	// Legacy persisted closures are filtered before the fold, so the reducer
	// never sees their seqs. The checkpoint must still cover them, otherwise
	// a log ending in a legacy closure keeps the fast path out of reach.
	if n := len(delta); n > 0 && next.AppliedSeq < delta[n-1].Seq {
		next.AppliedSeq = delta[n-1].Seq
	}

	s.persistWriteBehind(userID, next)
	return next, nil
}

// ExplainRequest describes one audit query.
type ExplainRequest struct {
	UserID string
	// FromSeq/ToSeq optionally bound the replayed sequence window
	// (inclusive). When unset the whole log is replayed from scratch.
	FromSeq *int64
	ToSeq   *int64
	// IncludeEvents enriches each explanation with the full event object.
	IncludeEvents bool
}

// ExplainResponse is the audit endpoint's payload.
type ExplainResponse struct {
	FinalState        *streak.StreamProjection `json:"finalState"`
	EventExplanations []streak.StepExplanation `json:"eventExplanations"`
}

// ExplainUserStreakProjection replays the user's log through the
// instrumented reducer and returns the final state plus one before/after
// snapshot per event. The replay always starts from the zero projection so
// the trace is self-contained; it never writes the cache.
func (s *Service) ExplainUserStreakProjection(ctx context.Context, req ExplainRequest) (*ExplainResponse, error) {
	if req.UserID == "" {
		return nil, invalidQueryf("uid is required")
	}
	if req.FromSeq != nil && req.ToSeq != nil && *req.FromSeq > *req.ToSeq {
		return nil, invalidQueryf("fromSeq %d is greater than toSeq %d", *req.FromSeq, *req.ToSeq)
	}

	env, err := s.loadEnvironment(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	events, err := s.loadExplainEvents(ctx, req, env.lastSeq)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	base := streak.NewProjection()
	merged, holidayMap, _, err := s.assembleStream(ctx, req.UserID, base, events, env)
	if err != nil {
		return nil, err
	}

	reducer := streak.NewReducer(s.opts.Policy, env.loc, holidayMap)
	finalState, steps, err := reducer.Explain(base, merged)
	if err != nil {
		return nil, fmt.Errorf("explain projection: %w", err)
	}

	if !req.IncludeEvents {
		for i := range steps {
			steps[i].Event = nil
		}
	}

	return &ExplainResponse{
		FinalState:        finalState,
		EventExplanations: steps,
	}, nil
}

func (s *Service) loadExplainEvents(ctx context.Context, req ExplainRequest, lastSeq int64) ([]*v1.Event, error) {
	fromSeq := int64(0)
	if req.FromSeq != nil {
		fromSeq = *req.FromSeq
	}
	toSeq := lastSeq
	if req.ToSeq != nil {
		toSeq = *req.ToSeq
	}
	if req.FromSeq == nil && req.ToSeq == nil {
		return s.events.LoadDeltaEvents(ctx, req.UserID, 0)
	}
	return s.events.LoadEventsBySeqRange(ctx, req.UserID, fromSeq, toSeq)
}

// loadEnvironment issues the three independent collaborator reads
// concurrently: cached projection, log metadata, and profile timezone.
func (s *Service) loadEnvironment(ctx context.Context, userID string) (*environment, error) {
	var (
		cached  *streak.StreamProjection
		lastSeq int64
		tzName  string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projection, err := s.cache.ReadProjection(gctx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			cached = streak.NewProjection()
			return nil
		}
		if err != nil {
			return fmt.Errorf("read projection cache: %w", err)
		}
		cached = projection
		return nil
	})
	g.Go(func() error {
		seq, err := s.events.ReadLastSeq(gctx, userID)
		if err != nil {
			return fmt.Errorf("read last seq: %w", err)
		}
		lastSeq = seq
		return nil
	})
	g.Go(func() error {
		tz, err := s.profiles.ReadTimezone(gctx, userID)
		if errors.Is(err, storage.ErrNotFound) {
			tzName = s.opts.DefaultTimezone
			return nil
		}
		if err != nil {
			return fmt.Errorf("read timezone: %w", err)
		}
		tzName = tz
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		slog.Warn("Invalid profile timezone, using default",
			"user_id", userID,
			"timezone", tzName,
			"error", err)
		loc, err = time.LoadLocation(s.opts.DefaultTimezone)
		if err != nil {
			return nil, fmt.Errorf("load default timezone %q: %w", s.opts.DefaultTimezone, err)
		}
	}

	now := s.nowFn()
	today := calendar.Compute(now, loc)
	yesterday, err := today.AddDays(-1, loc)
	if err != nil {
		return nil, fmt.Errorf("compute yesterday: %w", err)
	}

	return &environment{
		projection: cached,
		lastSeq:    lastSeq,
		loc:        loc,
		today:      today,
		yesterday:  yesterday,
	}, nil
}

// assembleStream filters legacy persisted closures out of the delta,
// derives virtual closures for the evaluation window, and returns the
// merged stream in (dayKey, createdAt) order together with the holiday map
// used for derivation and the window's end key.
func (s *Service) assembleStream(
	ctx context.Context,
	userID string,
	base *streak.StreamProjection,
	delta []*v1.Event,
	env *environment,
) ([]*v1.Event, calendar.HolidayMap, calendar.DayKey, error) {
	// Legacy persisted closures are superseded by virtual derivation;
	// replaying them would double-count streak breaks.
	real := make([]*v1.Event, 0, len(delta))
	for _, evt := range delta {
		if evt.Type == v1.TypeDayClosed && !evt.IsVirtual() {
			continue
		}
		real = append(real, evt)
	}

	byDay := streak.GroupEventsByDay(real)

	// Optimistic rule: today is only judged once it already has activity;
	// otherwise the horizon stops at yesterday.
	endKey := env.yesterday
	if len(byDay[env.today]) > 0 {
		endKey = env.today
	}

	startKey := base.LastEvaluatedDayKey
	if startKey.IsZero() {
		if len(real) > 0 {
			startKey = real[0].DayKey
		} else {
			startKey = env.yesterday
		}
	}

	holidayMap, err := s.fetchHolidayWindow(ctx, startKey, env)
	if err != nil {
		return nil, nil, "", err
	}

	closures, err := streak.DeriveVirtualClosures(userID, startKey, endKey, byDay, env.loc, holidayMap)
	if err != nil {
		return nil, nil, "", err
	}

	merged := make([]*v1.Event, 0, len(real)+len(closures))
	merged = append(merged, real...)
	merged = append(merged, closures...)
	sortEventStream(merged)
	return merged, holidayMap, endKey, nil
}

// fetchHolidayWindow loads holidays for a trailing window that covers the
// whole evaluation range, even when a full replay reaches back further than
// the configured window.
func (s *Service) fetchHolidayWindow(ctx context.Context, startKey calendar.DayKey, env *environment) (calendar.HolidayMap, error) {
	windowStart, err := env.today.AddDays(-s.opts.HolidayWindowDays, env.loc)
	if err != nil {
		return nil, fmt.Errorf("compute holiday window: %w", err)
	}
	if !startKey.IsZero() && startKey.Before(windowStart) {
		windowStart = startKey
	}

	holidayMap, err := s.holidays.FetchHolidays(ctx, windowStart, env.today)
	if err != nil {
		return nil, fmt.Errorf("fetch holidays: %w", err)
	}
	return holidayMap, nil
}

// sortEventStream orders events by (dayKey, createdAt); on exact instant
// ties real events sort before virtual ones so a day's activity is never
// shadowed by its closure.
func sortEventStream(events []*v1.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.DayKey != b.DayKey {
			return a.DayKey.Before(b.DayKey)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return !a.IsVirtual() && b.IsVirtual()
	})
}

// persistWriteBehind stores the projection on a detached context. Failures
// are logged and swallowed: the cache degrades to stale-but-consistent and
// the next read recomputes from the same checkpoint.
func (s *Service) persistWriteBehind(userID string, projection *streak.StreamProjection) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.WriteTimeout)
		defer cancel()

		err := s.cache.WriteProjection(ctx, userID, projection)
		if err != nil {
			slog.Error("Write-behind projection persist failed",
				"user_id", userID,
				"applied_seq", projection.AppliedSeq,
				"error", err)
		}
		if s.persisted != nil {
			s.persisted(userID, err)
		}
	}()
}

func invalidQueryf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
