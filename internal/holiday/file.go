// Package holiday provides holiday calendar sources for the streak engine.
// The postgres-backed source lives with the other adapters in
// internal/core/storage/postgres; this package adds a file-based source for
// deployments that ship a static calendar, and a caching decorator shared by
// both.
package holiday

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
)

// fileCalendar is the on-disk YAML shape: a list of {day, name} entries.
type fileCalendar struct {
	Holidays []fileHoliday `yaml:"holidays"`
}

type fileHoliday struct {
	Day  string `yaml:"day"`
	Name string `yaml:"name"`
}

// FileCalendar serves holidays from a YAML file loaded once at startup.
// No hot reload: calendars change a few times a year at most.
type FileCalendar struct {
	holidays calendar.HolidayMap
}

// NewFileCalendar eagerly loads and validates the calendar file.
func NewFileCalendar(path string) (*FileCalendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading holiday calendar %s: %w", path, err)
	}

	var raw fileCalendar
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing holiday calendar %s: %w", path, err)
	}

	holidays := make(calendar.HolidayMap, len(raw.Holidays))
	for _, h := range raw.Holidays {
		day, err := calendar.Parse(h.Day)
		if err != nil {
			return nil, fmt.Errorf("holiday calendar %s: %w", path, err)
		}
		if h.Name == "" {
			return nil, fmt.Errorf("holiday calendar %s: day %s has no name", path, day)
		}
		holidays[day] = h.Name
	}

	return &FileCalendar{holidays: holidays}, nil
}

// FetchHolidays returns the holidays falling inside the inclusive range.
func (c *FileCalendar) FetchHolidays(ctx context.Context, start, end calendar.DayKey) (calendar.HolidayMap, error) {
	out := make(calendar.HolidayMap)
	for day, name := range c.holidays {
		if day < start || day > end {
			continue
		}
		out[day] = name
	}
	return out, nil
}
