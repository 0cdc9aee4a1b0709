package projection

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	v1 "github.com/scriptoria-lab/project-scriptoria/internal/api/v1"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
	storagemocks "github.com/scriptoria-lab/project-scriptoria/internal/mocks/storage"
	"github.com/scriptoria-lab/project-scriptoria/internal/streak"
)

// Fixture week: 2025-10-20 is a Monday.

type serviceMocks struct {
	events   *storagemocks.EventStore
	cache    *storagemocks.ProjectionCache
	profiles *storagemocks.ProfileStore
	holidays *storagemocks.HolidayCalendar
}

func newTestService(t *testing.T, now time.Time) (*Service, *serviceMocks) {
	m := &serviceMocks{
		events:   storagemocks.NewEventStore(t),
		cache:    storagemocks.NewProjectionCache(t),
		profiles: storagemocks.NewProfileStore(t),
		holidays: storagemocks.NewHolidayCalendar(t),
	}
	svc := NewService(m.events, m.cache, m.profiles, m.holidays, Options{})
	svc.nowFn = func() time.Time { return now }
	return svc, m
}

func (m *serviceMocks) expectEnvironment(cached *streak.StreamProjection, lastSeq int64) {
	if cached == nil {
		m.cache.EXPECT().ReadProjection(mock.Anything, "user-1").
			Return(nil, storage.ErrNotFound).Once()
	} else {
		m.cache.EXPECT().ReadProjection(mock.Anything, "user-1").
			Return(cached, nil).Once()
	}
	m.events.EXPECT().ReadLastSeq(mock.Anything, "user-1").Return(lastSeq, nil).Once()
	m.profiles.EXPECT().ReadTimezone(mock.Anything, "user-1").Return("UTC", nil).Once()
}

func postEvent(seq int64, day calendar.DayKey) *v1.Event {
	created, _ := day.StartOfDay(time.UTC)
	return &v1.Event{
		Seq:       seq,
		UserID:    "user-1",
		Type:      v1.TypePostCreated,
		CreatedAt: created.Add(9 * time.Hour),
		DayKey:    day,
		PostCreated: &v1.PostCreated{
			PostID:  fmt.Sprintf("post-%d", seq),
			BoardID: "board-1",
		},
	}
}

func awaitPersist(t *testing.T, svc *Service) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	svc.persisted = func(_ string, err error) { done <- err }
	return done
}

func TestService_ComputeUserStreakProjection_RequiresUserID(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 10, 23, 9, 0, 0, 0, time.UTC))

	_, err := svc.ComputeUserStreakProjection(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestService_ComputeUserStreakProjection_FastPath(t *testing.T) {
	now := time.Date(2025, 10, 24, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	cached := streak.NewProjection()
	cached.CurrentStreak = 4
	cached.LongestStreak = 4
	cached.LastContributionDate = "2025-10-23"
	cached.AppliedSeq = 5
	cached.LastEvaluatedDayKey = "2025-10-23"

	// Log unchanged and virtual evaluation covers through yesterday: no
	// delta load, no derivation, no write-behind.
	m.expectEnvironment(cached, 5)

	got, err := svc.ComputeUserStreakProjection(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, cached, got)
}

func TestService_ComputeUserStreakProjection_FullCompute(t *testing.T) {
	// Thursday morning: the horizon stops at Wednesday because today has no
	// activity yet.
	now := time.Date(2025, 10, 23, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	m.expectEnvironment(nil, 2)
	m.events.EXPECT().LoadDeltaEvents(mock.Anything, "user-1", int64(0)).
		Return([]*v1.Event{
			postEvent(1, "2025-10-20"),
			postEvent(2, "2025-10-21"),
		}, nil).Once()
	m.holidays.EXPECT().
		FetchHolidays(mock.Anything, calendar.DayKey("2025-09-25"), calendar.DayKey("2025-10-23")).
		Return(nil, nil).Once()
	m.cache.EXPECT().WriteProjection(mock.Anything, "user-1", mock.Anything).
		Return(nil).Once()

	done := awaitPersist(t, svc)

	got, err := svc.ComputeUserStreakProjection(context.Background(), "user-1")
	require.NoError(t, err)

	// Wednesday closed without a post, so the two-day streak entered its
	// grace window with a Thursday deadline.
	require.Equal(t, streak.StatusEligible, got.Status.Kind)
	require.Equal(t, calendar.DayKey("2025-10-23"), got.Status.Eligible.Deadline)
	require.Equal(t, 2, got.CurrentStreak)
	require.Equal(t, 2, got.OriginalStreak)
	require.Equal(t, int64(2), got.AppliedSeq)
	require.Equal(t, calendar.DayKey("2025-10-22"), got.LastEvaluatedDayKey)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("write-behind persist never ran")
	}
}

func TestService_ComputeUserStreakProjection_OptimisticHorizonIncludesToday(t *testing.T) {
	now := time.Date(2025, 10, 21, 18, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	// A post exists on today's key, so today is part of the evaluation
	// window and extends the streak immediately.
	m.expectEnvironment(nil, 2)
	m.events.EXPECT().LoadDeltaEvents(mock.Anything, "user-1", int64(0)).
		Return([]*v1.Event{
			postEvent(1, "2025-10-20"),
			postEvent(2, "2025-10-21"),
		}, nil).Once()
	m.holidays.EXPECT().FetchHolidays(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()
	m.cache.EXPECT().WriteProjection(mock.Anything, "user-1", mock.Anything).
		Return(nil).Once()

	done := awaitPersist(t, svc)

	got, err := svc.ComputeUserStreakProjection(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, streak.StatusOnStreak, got.Status.Kind)
	require.Equal(t, 2, got.CurrentStreak)
	require.Equal(t, calendar.DayKey("2025-10-21"), got.LastEvaluatedDayKey)

	<-done
}

func TestService_ComputeUserStreakProjection_FiltersLegacyPersistedClosures(t *testing.T) {
	now := time.Date(2025, 10, 22, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	legacy := &v1.Event{
		Seq:       2,
		UserID:    "user-1",
		Type:      v1.TypeDayClosed,
		CreatedAt: time.Date(2025, 10, 20, 23, 59, 59, 0, time.UTC),
		DayKey:    "2025-10-20",
		DayClosed: &v1.DayClosed{IdempotencyKey: "legacy:2025-10-20"},
	}

	m.expectEnvironment(nil, 3)
	m.events.EXPECT().LoadDeltaEvents(mock.Anything, "user-1", int64(0)).
		Return([]*v1.Event{
			postEvent(1, "2025-10-20"),
			legacy,
			postEvent(3, "2025-10-21"),
		}, nil).Once()
	m.holidays.EXPECT().FetchHolidays(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()
	m.cache.EXPECT().WriteProjection(mock.Anything, "user-1", mock.Anything).
		Return(nil).Once()

	done := awaitPersist(t, svc)

	got, err := svc.ComputeUserStreakProjection(context.Background(), "user-1")
	require.NoError(t, err)

	// The persisted closure is regenerated virtually; replaying it as a
	// real event would double-judge October 20th.
	require.Equal(t, streak.StatusOnStreak, got.Status.Kind)
	require.Equal(t, 2, got.CurrentStreak)

	<-done
}

func TestService_ComputeUserStreakProjection_TrailingLegacyClosureAdvancesCheckpoint(t *testing.T) {
	now := time.Date(2025, 10, 21, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	legacy := &v1.Event{
		Seq:       2,
		UserID:    "user-1",
		Type:      v1.TypeDayClosed,
		CreatedAt: time.Date(2025, 10, 20, 23, 59, 59, 0, time.UTC),
		DayKey:    "2025-10-20",
		DayClosed: &v1.DayClosed{IdempotencyKey: "legacy:2025-10-20"},
	}

	m.expectEnvironment(nil, 2)
	m.events.EXPECT().LoadDeltaEvents(mock.Anything, "user-1", int64(0)).
		Return([]*v1.Event{
			postEvent(1, "2025-10-20"),
			legacy,
		}, nil).Once()
	m.holidays.EXPECT().FetchHolidays(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()
	m.cache.EXPECT().WriteProjection(mock.Anything, "user-1", mock.Anything).
		Return(nil).Once()

	done := awaitPersist(t, svc)

	got, err := svc.ComputeUserStreakProjection(context.Background(), "user-1")
	require.NoError(t, err)

	// The reducer never sees the filtered closure, but the checkpoint must
	// still cover its seq. Stopping at 1 would leave this user recomputing
	// the same delta on every read.
	require.Equal(t, int64(2), got.AppliedSeq)
	require.Equal(t, 1, got.CurrentStreak)
	require.Equal(t, calendar.DayKey("2025-10-20"), got.LastEvaluatedDayKey)

	<-done
}

func TestService_ComputeUserStreakProjection_SurvivesPersistFailure(t *testing.T) {
	now := time.Date(2025, 10, 21, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	m.expectEnvironment(nil, 1)
	m.events.EXPECT().LoadDeltaEvents(mock.Anything, "user-1", int64(0)).
		Return([]*v1.Event{postEvent(1, "2025-10-20")}, nil).Once()
	m.holidays.EXPECT().FetchHolidays(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()
	m.cache.EXPECT().WriteProjection(mock.Anything, "user-1", mock.Anything).
		Return(fmt.Errorf("connection reset")).Once()

	done := awaitPersist(t, svc)

	got, err := svc.ComputeUserStreakProjection(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, got.CurrentStreak)

	// The write-behind failure is swallowed; the caller already has the
	// fresh projection.
	select {
	case persistErr := <-done:
		require.Error(t, persistErr)
	case <-time.After(2 * time.Second):
		t.Fatal("write-behind persist never ran")
	}
}

func TestService_ComputeUserStreakProjection_DeltaLoadError(t *testing.T) {
	now := time.Date(2025, 10, 21, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	m.expectEnvironment(nil, 1)
	m.events.EXPECT().LoadDeltaEvents(mock.Anything, "user-1", int64(0)).
		Return(nil, fmt.Errorf("db failure")).Once()

	_, err := svc.ComputeUserStreakProjection(context.Background(), "user-1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidQuery)
}

func TestService_ComputeUserStreakProjection_InvalidProfileTimezoneFallsBack(t *testing.T) {
	now := time.Date(2025, 10, 24, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	cached := streak.NewProjection()
	cached.CurrentStreak = 1
	cached.AppliedSeq = 1
	cached.LastEvaluatedDayKey = "2025-10-23"

	m.cache.EXPECT().ReadProjection(mock.Anything, "user-1").Return(cached, nil).Once()
	m.events.EXPECT().ReadLastSeq(mock.Anything, "user-1").Return(int64(1), nil).Once()
	m.profiles.EXPECT().ReadTimezone(mock.Anything, "user-1").Return("Mars/Olympus", nil).Once()

	got, err := svc.ComputeUserStreakProjection(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, cached, got)
}

func TestService_ExplainUserStreakProjection_Validation(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 10, 23, 9, 0, 0, 0, time.UTC))
	from, to := int64(9), int64(3)

	tests := []struct {
		name string
		req  ExplainRequest
	}{
		{name: "missing uid", req: ExplainRequest{}},
		{name: "inverted bounds", req: ExplainRequest{UserID: "user-1", FromSeq: &from, ToSeq: &to}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ExplainUserStreakProjection(context.Background(), tc.req)
			require.ErrorIs(t, err, ErrInvalidQuery)
		})
	}
}

func TestService_ExplainUserStreakProjection_ReplaysWholeLog(t *testing.T) {
	now := time.Date(2025, 10, 23, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)

	// Even with a cached checkpoint present, the trace replays from the
	// zero projection so every step is visible.
	cached := streak.NewProjection()
	cached.CurrentStreak = 2
	cached.AppliedSeq = 2
	cached.LastEvaluatedDayKey = "2025-10-21"

	m.expectEnvironment(cached, 2)
	m.events.EXPECT().LoadDeltaEvents(mock.Anything, "user-1", int64(0)).
		Return([]*v1.Event{
			postEvent(1, "2025-10-20"),
			postEvent(2, "2025-10-21"),
		}, nil).Once()
	m.holidays.EXPECT().FetchHolidays(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	resp, err := svc.ExplainUserStreakProjection(context.Background(), ExplainRequest{UserID: "user-1"})
	require.NoError(t, err)

	// Two posts plus the virtual closure for Wednesday.
	require.Len(t, resp.EventExplanations, 3)
	require.Equal(t, streak.StatusEligible, resp.FinalState.Status.Kind)
	require.Equal(t, 2, resp.FinalState.CurrentStreak)

	// Events are elided unless explicitly requested.
	for _, step := range resp.EventExplanations {
		require.Nil(t, step.Event)
		require.NotNil(t, step.StateBefore)
		require.NotNil(t, step.StateAfter)
	}
}

func TestService_ExplainUserStreakProjection_BoundedWindowIncludesEvents(t *testing.T) {
	now := time.Date(2025, 10, 21, 18, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, now)
	from, to := int64(2), int64(2)

	m.expectEnvironment(nil, 3)
	m.events.EXPECT().LoadEventsBySeqRange(mock.Anything, "user-1", int64(2), int64(2)).
		Return([]*v1.Event{postEvent(2, "2025-10-21")}, nil).Once()
	m.holidays.EXPECT().FetchHolidays(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, nil).Once()

	resp, err := svc.ExplainUserStreakProjection(context.Background(), ExplainRequest{
		UserID:        "user-1",
		FromSeq:       &from,
		ToSeq:         &to,
		IncludeEvents: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.EventExplanations, 1)
	require.NotNil(t, resp.EventExplanations[0].Event)
	require.Equal(t, int64(2), resp.EventExplanations[0].Event.Seq)
}

func TestSortEventStream(t *testing.T) {
	endOfMonday := time.Date(2025, 10, 20, 23, 59, 59, 999999999, time.UTC)
	virtualMonday := v1.NewVirtualDayClosed("user-1", "2025-10-20", endOfMonday)
	latePost := postEvent(3, "2025-10-20")
	latePost.CreatedAt = endOfMonday

	events := []*v1.Event{
		postEvent(2, "2025-10-21"),
		virtualMonday,
		latePost,
		postEvent(1, "2025-10-20"),
	}
	sortEventStream(events)

	require.Equal(t, int64(1), events[0].Seq)
	// Instant tie on end-of-day: the real post still sorts before the
	// closure.
	require.Equal(t, int64(3), events[1].Seq)
	require.True(t, events[2].IsVirtual())
	require.Equal(t, int64(2), events[3].Seq)
}
