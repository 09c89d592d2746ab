package probe

import (
	"fmt"
	"time"

	"github.com/MrSnakeDoc/freenight/internal/domain"
)

// ExpandRange lists every calendar date from start to end inclusive.
// A limit of 0 disables the size check.
func ExpandRange(start, end time.Time, limit int) ([]time.Time, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange,
			end.Format(domain.DateLayout), start.Format(domain.DateLayout))
	}

	n := 1
	for d := start; d.Before(end); d = domain.NextDay(d) {
		n++
		if limit > 0 && n > limit {
			return nil, fmt.Errorf("%w: more than %d dates", ErrTooManyDates, limit)
		}
	}

	dates := make([]time.Time, 0, n)
	for d := start; !d.After(end); d = domain.NextDay(d) {
		dates = append(dates, d)
	}
	return dates, nil
}

// ParseDates parses YYYY-MM-DD strings, keeping order and duplicates.
func ParseDates(raw []string, limit int) ([]time.Time, error) {
	if limit > 0 && len(raw) > limit {
		return nil, fmt.Errorf("%w: %d dates, limit is %d", ErrTooManyDates, len(raw), limit)
	}

	dates := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
