// Package storage defines the collaborator interfaces the streak engine
// consumes. The engine never talks to a concrete database directly; every
// implementation (postgres, memory) is injected at construction time.
package storage

import (
	"context"
	"errors"

	v1 "github.com/scriptoria-lab/project-scriptoria/internal/api/v1"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
	"github.com/scriptoria-lab/project-scriptoria/internal/streak"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an event with the same (user_id, id) or
// idempotency key already exists.
var ErrDuplicate = errors.New("event already exists")

// EventStore is the append-only per-user activity log.
//
// Sequence numbers are assigned by the store on append and are strictly
// increasing per user. The log is only ever appended to by the posting
// flow and read by the projection engine; no read-modify-write races exist
// on it.
type EventStore interface {
	// SaveEvent appends a real event and populates its Seq.
	// Returns ErrDuplicate when the event's idempotency scope collides.
	SaveEvent(ctx context.Context, event *v1.Event) error

	// LoadDeltaEvents fetches events with seq > fromSeq, ascending by seq.
	// fromSeq=0 means "from the beginning".
	LoadDeltaEvents(ctx context.Context, userID string, fromSeq int64) ([]*v1.Event, error)

	// LoadEventsBySeqRange fetches events with fromSeq <= seq <= toSeq,
	// ascending by seq.
	LoadEventsBySeqRange(ctx context.Context, userID string, fromSeq, toSeq int64) ([]*v1.Event, error)

	// ReadLastSeq returns the highest sequence number in the user's log,
	// or 0 for an empty log.
	ReadLastSeq(ctx context.Context, userID string) (int64, error)
}

// ProjectionCache persists checkpointed streak projections.
//
// Writes are best-effort write-behind with no transactional coupling to the
// event log read path: last write wins, and a lost write only costs a
// recomputation on the next read.
type ProjectionCache interface {
	// ReadProjection returns the cached projection, or ErrNotFound if the
	// user has never been projected.
	ReadProjection(ctx context.Context, userID string) (*streak.StreamProjection, error)

	// WriteProjection upserts the projection.
	WriteProjection(ctx context.Context, userID string, projection *streak.StreamProjection) error
}

// ProfileStore exposes the one profile attribute the engine needs.
type ProfileStore interface {
	// ReadTimezone returns the user's IANA timezone name, or ErrNotFound
	// when the profile has no timezone set.
	ReadTimezone(ctx context.Context, userID string) (string, error)
}

// HolidayCalendar supplies the holiday map for a bounded day range.
// Days absent from the map are not holidays.
type HolidayCalendar interface {
	FetchHolidays(ctx context.Context, start, end calendar.DayKey) (calendar.HolidayMap, error)
}
