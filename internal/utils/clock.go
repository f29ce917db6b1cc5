package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates. All day boundaries are
// computed in JST regardless of server timezone.
const DateLayout = "2006-01-02"

var jst = loadJST()

func loadJST() *time.Location {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		return time.FixedZone("JST", 9*60*60)
	}
	return loc
}

// JST returns the Asia/Tokyo location used for all day-boundary math.
func JST() *time.Location {
	return jst
}

// Clock supplies "now" so controllers can be tested against a fixed date
// instead of reading the wall clock ad hoc.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func NewClock() Clock {
	return systemClock{}
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

// NewFixedClock returns a Clock pinned to t, for tests.
func NewFixedClock(t time.Time) Clock {
	return fixedClock{now: t}
}

// CurrentDate returns the JST calendar date of the clock's now.
func CurrentDate(clock Clock) string {
	return clock.Now().In(jst).Format(DateLayout)
}

// ParseDate validates a YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, jst)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", date, err)
	}
	return t, nil
}

// NextDate returns the JST calendar date one day after date.
func NextDate(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(DateLayout), nil
}

// PreviousDate returns the JST calendar date one day before date.
func PreviousDate(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format(DateLayout), nil
}

// ParseTimestamp parses an ISO-8601 instant.
func ParseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is required")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected RFC3339: %w", value, err)
	}
	return t, nil
}
