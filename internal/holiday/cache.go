package holiday

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/scriptoria-lab/project-scriptoria/internal/core/calendar"
	"github.com/scriptoria-lab/project-scriptoria/internal/core/storage"
)

// CachingCalendar decorates a HolidayCalendar with a TTL cache keyed by the
// requested range. Every projection request fetches the same trailing
// window, so concurrent requests would otherwise hammer the source with
// identical queries; singleflight collapses them into one fetch.
type CachingCalendar struct {
	source storage.HolidayCalendar
	ttl    time.Duration
	nowFn  func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group // Dedupe concurrent fetches of the same range
}

type cacheEntry struct {
	holidays  calendar.HolidayMap
	fetchedAt time.Time
}

// NewCachingCalendar wraps source with a TTL cache.
func NewCachingCalendar(source storage.HolidayCalendar, ttl time.Duration) *CachingCalendar {
	return &CachingCalendar{
		source:  source,
		ttl:     ttl,
		nowFn:   time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func rangeKey(start, end calendar.DayKey) string {
	return fmt.Sprintf("%s..%s", start, end)
}

// FetchHolidays serves from cache when fresh, otherwise fetches through
// singleflight and caches the result.
func (c *CachingCalendar) FetchHolidays(ctx context.Context, start, end calendar.DayKey) (calendar.HolidayMap, error) {
	key := rangeKey(start, end)

	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()
	if exists && c.nowFn().Sub(entry.fetchedAt) < c.ttl {
		return entry.holidays, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot.
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()
		if exists && c.nowFn().Sub(entry.fetchedAt) < c.ttl {
			return entry.holidays, nil
		}

		holidays, err := c.source.FetchHolidays(ctx, start, end)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		now := c.nowFn()
		// The range key moves with the evaluation window, so expired entries
		// are never looked up again. Sweep them here or the map grows by one
		// stale entry per day.
		for staleKey, stale := range c.entries {
			if now.Sub(stale.fetchedAt) >= c.ttl {
				delete(c.entries, staleKey)
			}
		}
		c.entries[key] = cacheEntry{holidays: holidays, fetchedAt: now}
		c.mu.Unlock()
		return holidays, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(calendar.HolidayMap), nil
}
