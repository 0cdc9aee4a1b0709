package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
)

// ProfileAdapter implements storage.ProfileStore using PostgreSQL.
type ProfileAdapter struct {
	db *sql.DB
}

// NewProfileAdapter creates a ProfileAdapter sharing the given connection.
func NewProfileAdapter(db *sql.DB) *ProfileAdapter {
	return &ProfileAdapter{db: db}
}

// ReadTimezone returns the user's IANA timezone name. A missing profile row
// or an empty column both map to storage.ErrNotFound so the caller applies
// its configured default.
func (a *ProfileAdapter) ReadTimezone(ctx context.Context, userID string) (string, error) {
	var tz string
	err := a.db.QueryRowContext(ctx, queryReadTimezone, userID).Scan(&tz)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read timezone: %w", err)
	}
	if tz == "" {
		return "", storage.ErrNotFound
	}
	return tz, nil
}

// HolidayAdapter implements storage.HolidayCalendar using PostgreSQL.
type HolidayAdapter struct {
	db *sql.DB
}

// NewHolidayAdapter creates a HolidayAdapter sharing the given connection.
func NewHolidayAdapter(db *sql.DB) *HolidayAdapter {
	return &HolidayAdapter{db: db}
}

// FetchHolidays returns the holiday map for the inclusive day range.
func (a *HolidayAdapter) FetchHolidays(ctx context.Context, start, end calendar.DayKey) (calendar.HolidayMap, error) {
	rows, err := a.db.QueryContext(ctx, queryFetchHolidays, string(start), string(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := make(calendar.HolidayMap)
	for rows.Next() {
		var day, name string
		if err := rows.Scan(&day, &name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday row: %w", err)
		}
		holidays[calendar.DayKey(day)] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holidays: %w", err)
	}
	return holidays, nil
}
