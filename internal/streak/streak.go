// Package streak tracks consecutive calendar days with at least one
// interaction. Comparisons use calendar-date strings derived from local time
// ("2006-01-02"); behavior at midnight or across timezone changes follows the
// local clock and is intentionally not a rolling 24-hour window.
package streak

import (
	"sync"
	"time"
)

// DayFormat is the calendar-day granularity all comparisons use.
const DayFormat = "2006-01-02"

// Day renders t at calendar-day granularity in local time.
func Day(t time.Time) string { return t.Format(DayFormat) }

// Tracker holds the streak counter and the last interaction date.
type Tracker struct {
	mu       sync.Mutex
	count    int
	lastDate string
}

// New restores a tracker from persisted state and applies the eager
// load-time reset: if the stored date is neither today nor yesterday the
// streak shows 0 before the next message even arrives.
func New(count int, lastDate string, now time.Time) *Tracker {
	t := &Tracker{count: count, lastDate: lastDate}
	today := Day(now)
	yesterday := Day(now.AddDate(0, 0, -1))
	if lastDate != today && lastDate != yesterday {
		t.count = 0
	}
	return t
}

// Record registers an interaction at now. It returns the streak value and
// whether this was the first interaction of the calendar day; the counter is
// never advanced twice within one day.
func (t *Tracker) Record(now time.Time) (count int, firstOfDay bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	today := Day(now)
	if t.lastDate == today {
		return t.count, false
	}
	yesterday := Day(now.AddDate(0, 0, -1))
	if t.lastDate == yesterday {
		t.count++
	} else {
		t.count = 1
	}
	t.lastDate = today
	return t.count, true
}

// Count returns the current streak.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// LastDate returns the last interaction date for persistence.
func (t *Tracker) LastDate() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastDate
}
