package models

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay bounds every time-of-day value; ranges are half-open
// [StartMin, EndMin) in minutes since midnight.
const MinutesPerDay = 24 * 60

var ErrInvalidRange = errors.New("invalid time range")

type TimeRange struct {
	StartMin int `json:"start_min"`
	EndMin   int `json:"end_min"`
}

func NewTimeRange(startMin, endMin int) (TimeRange, error) {
	if startMin < 0 || endMin > MinutesPerDay || endMin <= startMin {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{StartMin: startMin, EndMin: endMin}, nil
}

// TimeRangeFrom builds the range starting at startMin lasting
// durationMin minutes. The range must not cross midnight.
func TimeRangeFrom(startMin, durationMin int) (TimeRange, error) {
	if durationMin <= 0 {
		return TimeRange{}, ErrInvalidRange
	}
	return NewTimeRange(startMin, startMin+durationMin)
}

func (r TimeRange) Duration() int {
	return r.EndMin - r.StartMin
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.StartMin < other.EndMin && other.StartMin < r.EndMin
}

// Contains reports whether other fits entirely inside r.
func (r TimeRange) Contains(other TimeRange) bool {
	return r.StartMin <= other.StartMin && other.EndMin <= r.EndMin
}

func (r TimeRange) Start() string {
	return Clock(r.StartMin)
}

func (r TimeRange) End() string {
	return Clock(r.EndMin)
}

// ParseClock converts an "HH:MM" wall-clock string to minutes since
// midnight. The 24-hour form keeps range arithmetic in integers; the
// string form exists only at the API boundary.
func ParseClock(value string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(value, "%02d:%02d", &hours, &minutes); err != nil {
		return 0, ErrInvalidRange
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, ErrInvalidRange
	}
	if fmt.Sprintf("%02d:%02d", hours, minutes) != value {
		return 0, ErrInvalidRange
	}
	return hours*60 + minutes, nil
}

func Clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// WeekStart returns the Monday beginning the ISO week containing date,
// truncated to midnight.
func WeekStart(date time.Time) time.Time {
	day := date.Weekday()
	offset := int(day) - int(time.Monday)
	if day == time.Sunday {
		offset = 6
	}
	year, month, d := date.AddDate(0, 0, -offset).Date()
	return time.Date(year, month, d, 0, 0, 0, 0, date.Location())
}
