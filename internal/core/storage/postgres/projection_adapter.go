package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
	"github.com/scriptoria-lab/project-scriptoria/internal/streak"
)

// ProjectionAdapter implements storage.ProjectionCache using PostgreSQL.
//
// The projection is stored as a single JSONB document plus denormalized
// applied_seq and projector_version columns. The upsert guard in
// queryWriteProjection keeps applied_seq monotonic when two write-behind
// writers race: the stale one loses and nothing is corrupted.
type ProjectionAdapter struct {
	db *sql.DB
}

// NewProjectionAdapter creates a ProjectionAdapter sharing the given connection.
func NewProjectionAdapter(db *sql.DB) *ProjectionAdapter {
	return &ProjectionAdapter{db: db}
}

// ReadProjection loads the cached projection, or storage.ErrNotFound when
// the user has never been projected.
func (a *ProjectionAdapter) ReadProjection(ctx context.Context, userID string) (*streak.StreamProjection, error) {
	var doc []byte
	err := a.db.QueryRowContext(ctx, queryReadProjection, userID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read projection: %w", err)
	}

	var projection streak.StreamProjection
	if err := json.Unmarshal(doc, &projection); err != nil {
		return nil, fmt.Errorf("failed to decode projection document: %w", err)
	}
	return &projection, nil
}

// WriteProjection upserts the projection document.
func (a *ProjectionAdapter) WriteProjection(ctx context.Context, userID string, projection *streak.StreamProjection) error {
	doc, err := json.Marshal(projection)
	if err != nil {
		return fmt.Errorf("failed to encode projection document: %w", err)
	}

	result, err := a.db.ExecContext(ctx, queryWriteProjection,
		userID,
		doc,
		projection.AppliedSeq,
		projection.ProjectorVersion,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to write projection: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		// A concurrent writer checkpointed further ahead; losing is fine.
		slog.Debug("[Postgres] Skipped stale projection write",
			"user_id", userID,
			"applied_seq", projection.AppliedSeq)
	}
	return nil
}
