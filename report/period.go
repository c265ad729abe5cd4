package report

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the format of date query parameters.
const DateLayout = "2006-01-02"

// ErrInvalidPeriod is returned when a period ends before it starts.
var ErrInvalidPeriod = errors.New("invalid period")

// Period is an inclusive time range.
type Period struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// DefaultPeriod covers the last days days up to now. now is truncated to
// the minute so repeated requests share a cache entry.
func DefaultPeriod(now time.Time, days int) Period {
	end := now.UTC().Truncate(time.Minute)
	return Period{StartDate: end.AddDate(0, 0, -days), EndDate: end}
}

// ParsePeriod builds a period from optional YYYY-MM-DD bounds. The start
// date begins at midnight UTC and the end date covers its whole day. With
// only an end date the period reaches back days from it; with only a start
// date it runs to now, or to the start itself when that is in the future.
// Without either it is DefaultPeriod. Only two explicit bounds in the wrong
// order are an error.
func ParsePeriod(start, end string, now time.Time, days int) (Period, error) {
	if start == "" && end == "" {
		return DefaultPeriod(now, days), nil
	}

	var p Period
	if end != "" {
		t, err := time.Parse(DateLayout, end)
		if err != nil {
			return Period{}, fmt.Errorf("%w: endDate %q", ErrInvalidPeriod, end)
		}
		p.EndDate = t.Add(24*time.Hour - time.Nanosecond)
		p.StartDate = t.AddDate(0, 0, -days)
	}
	if start != "" {
		t, err := time.Parse(DateLayout, start)
		if err != nil {
			return Period{}, fmt.Errorf("%w: startDate %q", ErrInvalidPeriod, start)
		}
		p.StartDate = t
	}

	switch {
	case end == "":
		p.EndDate = DefaultPeriod(now, days).EndDate
		if p.EndDate.Before(p.StartDate) {
			p.EndDate = p.StartDate
		}
	case start != "" && p.EndDate.Before(p.StartDate):
		return Period{}, fmt.Errorf("%w: endDate before startDate", ErrInvalidPeriod)
	}

	return p, nil
}

func (p Period) key() string {
	return p.StartDate.UTC().Format(time.RFC3339Nano) + "/" + p.EndDate.UTC().Format(time.RFC3339Nano)
}
