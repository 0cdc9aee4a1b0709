// Package memory provides in-memory implementations of the storage
// collaborator interfaces. Useful for testing and development.
package memory

import (
	"context"
	"sync"

	v1 "github.com/scriptoria-lab/project-scriptoria/internal/api/v1"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
	"github.com/scriptoria-lab/project-scriptoria/internal/streak"
)

// EventLog is an in-memory storage.EventStore.
type EventLog struct {
	mu      sync.RWMutex
	nextSeq int64
	events  map[string][]*v1.Event // userID -> ascending by seq
	idems   map[string]struct{}    // userID + "\x00" + idempotency key
}

// NewEventLog creates an empty in-memory event log.
func NewEventLog() *EventLog {
	return &EventLog{
		events: make(map[string][]*v1.Event),
		idems:  make(map[string]struct{}),
	}
}

// SaveEvent appends a copy of the event and assigns it the next sequence number.
func (l *EventLog) SaveEvent(ctx context.Context, event *v1.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idemKey := event.UserID + "\x00" + idempotencyKey(event)
	if _, exists := l.idems[idemKey]; exists {
		return storage.ErrDuplicate
	}

	l.nextSeq++
	event.Seq = l.nextSeq

	stored := *event
	l.events[event.UserID] = append(l.events[event.UserID], &stored)
	l.idems[idemKey] = struct{}{}
	return nil
}

func idempotencyKey(event *v1.Event) string {
	if event.Type == v1.TypePostCreated && event.PostCreated != nil {
		return "post:" + event.PostCreated.PostID
	}
	if event.DayClosed != nil {
		return event.DayClosed.IdempotencyKey
	}
	return event.Type
}

// LoadDeltaEvents returns copies of events with seq > fromSeq.
func (l *EventLog) LoadDeltaEvents(ctx context.Context, userID string, fromSeq int64) ([]*v1.Event, error) {
	return l.LoadEventsBySeqRange(ctx, userID, fromSeq+1, int64(1)<<62)
}

// LoadEventsBySeqRange returns copies of events with fromSeq <= seq <= toSeq.
func (l *EventLog) LoadEventsBySeqRange(ctx context.Context, userID string, fromSeq, toSeq int64) ([]*v1.Event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*v1.Event
	for _, evt := range l.events[userID] {
		if evt.Seq < fromSeq || evt.Seq > toSeq {
			continue
		}
		cp := *evt
		out = append(out, &cp)
	}
	return out, nil
}

// ReadLastSeq returns the highest sequence number in the user's log.
func (l *EventLog) ReadLastSeq(ctx context.Context, userID string) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	events := l.events[userID]
	if len(events) == 0 {
		return 0, nil
	}
	return events[len(events)-1].Seq, nil
}

// ProjectionCache is an in-memory storage.ProjectionCache.
type ProjectionCache struct {
	mu          sync.RWMutex
	projections map[string]*streak.StreamProjection
}

// NewProjectionCache creates an empty in-memory projection cache.
func NewProjectionCache() *ProjectionCache {
	return &ProjectionCache{projections: make(map[string]*streak.StreamProjection)}
}

// ReadProjection returns a copy of the cached projection or storage.ErrNotFound.
func (c *ProjectionCache) ReadProjection(ctx context.Context, userID string) (*streak.StreamProjection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	projection, exists := c.projections[userID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return projection.Clone(), nil
}

// WriteProjection stores a copy of the projection. Last write wins.
func (c *ProjectionCache) WriteProjection(ctx context.Context, userID string, projection *streak.StreamProjection) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.projections[userID] = projection.Clone()
	return nil
}

// ProfileStore is an in-memory storage.ProfileStore.
type ProfileStore struct {
	mu        sync.RWMutex
	timezones map[string]string
}

// NewProfileStore creates an empty in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{timezones: make(map[string]string)}
}

// SetTimezone registers a user's timezone.
func (s *ProfileStore) SetTimezone(userID, tz string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timezones[userID] = tz
}

// ReadTimezone returns the registered timezone or storage.ErrNotFound.
func (s *ProfileStore) ReadTimezone(ctx context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tz, exists := s.timezones[userID]
	if !exists || tz == "" {
		return "", storage.ErrNotFound
	}
	return tz, nil
}

// HolidayCalendar is an in-memory storage.HolidayCalendar.
type HolidayCalendar struct {
	mu       sync.RWMutex
	holidays calendar.HolidayMap
}

// NewHolidayCalendar creates an empty in-memory holiday calendar.
func NewHolidayCalendar() *HolidayCalendar {
	return &HolidayCalendar{holidays: make(calendar.HolidayMap)}
}

// SetHoliday registers a holiday.
func (c *HolidayCalendar) SetHoliday(day calendar.DayKey, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holidays[day] = name
}

// FetchHolidays returns the holidays falling inside the inclusive range.
func (c *HolidayCalendar) FetchHolidays(ctx context.Context, start, end calendar.DayKey) (calendar.HolidayMap, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(calendar.HolidayMap)
	for day, name := range c.holidays {
		if day < start || day > end {
			continue
		}
		out[day] = name
	}
	return out, nil
}
