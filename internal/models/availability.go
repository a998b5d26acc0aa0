package models

import (
	"errors"
	"strings"
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

var ErrInvalidDayOfWeek = errors.New("invalid day of week")

func ParseDayOfWeek(value string) (DayOfWeek, error) {
	switch DayOfWeek(strings.ToLower(strings.TrimSpace(value))) {
	case Monday:
		return Monday, nil
	case Tuesday:
		return Tuesday, nil
	case Wednesday:
		return Wednesday, nil
	case Thursday:
		return Thursday, nil
	case Friday:
		return Friday, nil
	case Saturday:
		return Saturday, nil
	case Sunday:
		return Sunday, nil
	default:
		return "", ErrInvalidDayOfWeek
	}
}

// DayOfWeekOf maps a calendar date to its weekday enum value.
func DayOfWeekOf(date time.Time) DayOfWeek {
	switch date.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// AvailabilityWindow is one declared interval for a user on one weekday
// of one ISO week. (user_id, day_of_week, week_start_date) is unique;
// upserting the same key replaces the previous window. Windows with
// IsAvailable=false are kept so an explicit "unavailable" survives.
type AvailabilityWindow struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	DayOfWeek     DayOfWeek `json:"day_of_week"`
	Range         TimeRange `json:"range"`
	IsAvailable   bool      `json:"is_available"`
	WeekStartDate time.Time `json:"week_start_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
