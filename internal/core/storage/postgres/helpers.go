package postgres

import (
	"fmt"

	v1 "github.com/scriptoria-lab/project-scriptoria/internal/api/v1"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanEventRow scans a database row into an Event, decoding the JSONB
// payload into the union slot selected by type.
// Compatible with both sql.Row (single) and sql.Rows (multiple).
func scanEventRow(row scanner) (*v1.Event, error) {
	var evt v1.Event
	var payloadJSON []byte

	err := row.Scan(
		&evt.Seq,
		&evt.UserID,
		&evt.Type,
		&evt.CreatedAt,
		&evt.DayKey,
		&payloadJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan event row: %w", err)
	}

	if err := evt.UnmarshalPayload(payloadJSON); err != nil {
		return nil, fmt.Errorf("failed to decode event payload (seq %d): %w", evt.Seq, err)
	}

	return &evt, nil
}

// eventIdempotencyKey derives the storage-level idempotency key for a real
// event. Posts are deduplicated on their post ID; persisted closures carry
// their own user-scoped key.
func eventIdempotencyKey(evt *v1.Event) (string, error) {
	switch evt.Type {
	case v1.TypePostCreated:
		return "post:" + evt.PostCreated.PostID, nil
	case v1.TypeDayClosed:
		return evt.DayClosed.IdempotencyKey, nil
	default:
		return "", fmt.Errorf("unknown event type %q", evt.Type)
	}
}
