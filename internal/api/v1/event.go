package v1

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
)

// Event types. The set is closed: the reducer dispatches exhaustively on it.
const (
	TypePostCreated = "post.created"
	TypeDayClosed   = "day.closed"
)

// Event is the atomic unit of the per-user activity log.
// It separates the envelope (system attributes) from the payload.
//
// Exactly one payload pointer is non-nil, selected by Type. This replaces
// dynamically-typed event documents with a closed union the compiler can
// check at every dispatch site.
type Event struct {
	// Seq is the monotonic per-user sequence number assigned on ingestion.
	// Set by the database (BIGSERIAL) for persisted events; zero for
	// synthetic (virtual) events, which consume no sequence numbers.
	Seq int64 `json:"seq,omitempty"`

	// UserID identifies the author whose log this event belongs to.
	UserID string `json:"userId"`

	// Type discriminates the payload union.
	Type string `json:"type"`

	// CreatedAt is the instant the event occurred.
	CreatedAt time.Time `json:"createdAt"`

	// DayKey is the calendar day of CreatedAt in the author's timezone.
	// It is stamped once at ingestion (or derivation) and never recomputed
	// ad hoc downstream.
	DayKey calendar.DayKey `json:"dayKey"`

	// --- Payload union (exactly one non-nil) ---

	PostCreated *PostCreated `json:"postCreated,omitempty"`
	DayClosed   *DayClosed   `json:"dayClosed,omitempty"`
}

// PostCreated records a post published to a board.
type PostCreated struct {
	PostID        string `json:"postId"`
	BoardID       string `json:"boardId"`
	ContentLength int    `json:"contentLength"`
}

// DayClosed records that a calendar day ended. Virtual closures are
// synthesized during projection and never persisted; their idempotency key
// has the fixed form "virtual:{dayKey}:closed".
type DayClosed struct {
	IdempotencyKey string `json:"idempotencyKey"`

	// Virtual marks closures derived at read time. Persisted (legacy)
	// closures have Virtual=false and are filtered out of replay because
	// they are always regenerated virtually.
	Virtual bool `json:"virtual,omitempty"`
}

// VirtualClosureKey returns the canonical idempotency key for a virtual
// closure of the given day.
func VirtualClosureKey(day calendar.DayKey) string {
	return fmt.Sprintf("virtual:%s:closed", day)
}

// NewVirtualDayClosed builds a synthetic closure event for day.
// createdAt must be the end-of-day instant in the user's timezone.
func NewVirtualDayClosed(userID string, day calendar.DayKey, createdAt time.Time) *Event {
	return &Event{
		UserID:    userID,
		Type:      TypeDayClosed,
		CreatedAt: createdAt,
		DayKey:    day,
		DayClosed: &DayClosed{
			IdempotencyKey: VirtualClosureKey(day),
			Virtual:        true,
		},
	}
}

// IsVirtual reports whether the event is a synthetic closure.
func (e *Event) IsVirtual() bool {
	return e.Type == TypeDayClosed && e.DayClosed != nil && e.DayClosed.Virtual
}

// Validate ensures the envelope is complete and the payload matches Type.
func (e *Event) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if e.CreatedAt.IsZero() {
		return fmt.Errorf("created_at is required")
	}
	if _, err := calendar.Parse(string(e.DayKey)); err != nil {
		return fmt.Errorf("day_key: %w", err)
	}

	switch e.Type {
	case TypePostCreated:
		if e.PostCreated == nil || e.DayClosed != nil {
			return fmt.Errorf("%s event requires exactly the post_created payload", e.Type)
		}
		if e.PostCreated.PostID == "" {
			return fmt.Errorf("post_created.post_id is required")
		}
	case TypeDayClosed:
		if e.DayClosed == nil || e.PostCreated != nil {
			return fmt.Errorf("%s event requires exactly the day_closed payload", e.Type)
		}
		if e.DayClosed.IdempotencyKey == "" {
			return fmt.Errorf("day_closed.idempotency_key is required")
		}
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}

// MarshalPayload serializes only the payload half of the union, for storage
// in a single JSONB column keyed by Type.
func (e *Event) MarshalPayload() ([]byte, error) {
	switch e.Type {
	case TypePostCreated:
		return json.Marshal(e.PostCreated)
	case TypeDayClosed:
		return json.Marshal(e.DayClosed)
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}

// UnmarshalPayload is the inverse of MarshalPayload: it decodes raw payload
// bytes into the union slot selected by e.Type.
func (e *Event) UnmarshalPayload(raw []byte) error {
	switch e.Type {
	case TypePostCreated:
		payload := &PostCreated{}
		if err := json.Unmarshal(raw, payload); err != nil {
			return fmt.Errorf("decode post_created payload: %w", err)
		}
		e.PostCreated = payload
	case TypeDayClosed:
		payload := &DayClosed{}
		if err := json.Unmarshal(raw, payload); err != nil {
			return fmt.Errorf("decode day_closed payload: %w", err)
		}
		e.DayClosed = payload
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}
