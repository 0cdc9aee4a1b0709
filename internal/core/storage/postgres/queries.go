package postgres

// SQL queries for the per-user activity log and its derived stores.

const (
	// querySaveEvent appends an event with idempotency on (user_id, idempotency_key).
	// RETURNING retrieves the auto-generated seq for checkpoint tracking.
	// ON CONFLICT DO NOTHING returns no rows (sql.ErrNoRows) for duplicates.
	querySaveEvent = `
		INSERT INTO events (
			user_id, type, created_at, day_key, payload, idempotency_key
		)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, idempotency_key) DO NOTHING
		RETURNING seq
	`

	// queryLoadDeltaEvents fetches one user's events after a checkpoint in
	// strict total order. seq is a global BIGSERIAL, so per-user ordering
	// by seq is strictly increasing as required by replay.
	queryLoadDeltaEvents = `
		SELECT seq, user_id, type, created_at, day_key, payload
		FROM events
		WHERE user_id = $1
		  AND seq > $2
		ORDER BY seq ASC
	`

	// queryLoadEventsBySeqRange fetches an inclusive sequence window, used
	// by the explain endpoint's caller-supplied bounds.
	queryLoadEventsBySeqRange = `
		SELECT seq, user_id, type, created_at, day_key, payload
		FROM events
		WHERE user_id = $1
		  AND seq >= $2
		  AND seq <= $3
		ORDER BY seq ASC
	`

	// queryReadLastSeq returns 0 for an empty log rather than NULL.
	queryReadLastSeq = `
		SELECT COALESCE(MAX(seq), 0)
		FROM events
		WHERE user_id = $1
	`

	// queryReadProjection loads the checkpointed projection document.
	queryReadProjection = `
		SELECT projection
		FROM streak_projections
		WHERE user_id = $1
	`

	// queryWriteProjection upserts the projection document. The WHERE guard
	// keeps applied_seq monotonic under concurrent last-write-wins writers:
	// a racing stale writer simply loses.
	queryWriteProjection = `
		INSERT INTO streak_projections (
			user_id, projection, applied_seq, projector_version, updated_at
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			projection        = EXCLUDED.projection,
			applied_seq       = EXCLUDED.applied_seq,
			projector_version = EXCLUDED.projector_version,
			updated_at        = EXCLUDED.updated_at
		WHERE streak_projections.applied_seq <= EXCLUDED.applied_seq
	`

	// queryReadTimezone fetches the profile timezone; empty string means unset.
	queryReadTimezone = `
		SELECT COALESCE(timezone, '')
		FROM profiles
		WHERE user_id = $1
	`

	// queryFetchHolidays returns the holiday map for an inclusive day range.
	queryFetchHolidays = `
		SELECT day_key, name
		FROM holidays
		WHERE day_key >= $1
		  AND day_key <= $2
		ORDER BY day_key ASC
	`
)
