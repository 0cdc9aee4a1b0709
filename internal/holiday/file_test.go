package holiday

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
)

func writeCalendarFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewFileCalendar(t *testing.T) {
	path := writeCalendarFile(t, `
holidays:
  - day: "2025-10-10"
    name: National Day
  - day: "2025-12-25"
    name: Christmas
`)

	cal, err := NewFileCalendar(path)
	require.NoError(t, err)

	got, err := cal.FetchHolidays(context.Background(), "2025-10-01", "2025-10-31")
	require.NoError(t, err)
	require.Equal(t, calendar.HolidayMap{"2025-10-10": "National Day"}, got)

	all, err := cal.FetchHolidays(context.Background(), "2025-01-01", "2025-12-31")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestNewFileCalendar_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "bad day key",
			content: `
holidays:
  - day: "10/10/2025"
    name: National Day
`,
		},
		{
			name: "missing name",
			content: `
holidays:
  - day: "2025-10-10"
`,
		},
		{
			name:    "not yaml",
			content: `{{{`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFileCalendar(writeCalendarFile(t, tc.content))
			require.Error(t, err)
		})
	}
}

func TestNewFileCalendar_MissingFile(t *testing.T) {
	_, err := NewFileCalendar(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
