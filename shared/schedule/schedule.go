// Package schedule holds the wall-clock and calendar primitives shared by
// time slots and reservations.
//
// Times are minute precision and always rendered as zero-padded 24-hour
// "HH:MM" strings, so the rendered form sorts the same way as the minute
// value. Input may omit the leading zero of the hour ("9:30"); it is
// normalized on parse.
package schedule

import (
	"dinebook/shared/constant"
	"dinebook/shared/failure"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)

// Clock is a minute of the day.
type Clock struct {
	minutes int
}

// ParseClock accepts "H:MM" or "HH:MM".
func ParseClock(value string) (Clock, error) {
	match := clockPattern.FindStringSubmatch(value)
	if match == nil {
		return Clock{}, failure.BadRequestFromString(fmt.Sprintf("invalid time %q, expected HH:MM", value)) //nolint:wrapcheck
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])

	return Clock{minutes: hours*minutesPerHour + minutes}, nil
}

// ClockFromMinutes builds a Clock from a minute of the day.
func ClockFromMinutes(minutes int) (Clock, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return Clock{}, failure.BadRequestFromString(fmt.Sprintf("minute %d is outside a day", minutes)) //nolint:wrapcheck
	}

	return Clock{minutes: minutes}, nil
}

// IsClock reports whether value parses as a Clock.
func IsClock(value string) bool {
	return clockPattern.MatchString(value)
}

// NormalizeClock returns value in zero-padded form.
func NormalizeClock(value string) (string, error) {
	clock, err := ParseClock(value)
	if err != nil {
		return "", err
	}

	return clock.String(), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.minutes/minutesPerHour, c.minutes%minutesPerHour)
}

func (c Clock) Minutes() int {
	return c.minutes
}

func (c Clock) Before(other Clock) bool {
	return c.minutes < other.minutes
}

// Window is the half-open range [Start, End).
type Window struct {
	Start Clock
	End   Clock
}

// ParseWindow parses both ends and requires start < end.
func ParseWindow(start, end string) (Window, error) {
	startClock, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}

	endClock, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}

	if !startClock.Before(endClock) {
		return Window{}, failure.BadRequestFromString(fmt.Sprintf("start time %s must be before end time %s", startClock, endClock)) //nolint:wrapcheck
	}

	return Window{Start: startClock, End: endClock}, nil
}

// Overlaps is the half-open overlap test. Touching windows do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.minutes < other.End.minutes && w.End.minutes > other.Start.minutes
}

// Contains reports whether other lies entirely inside w.
func (w Window) Contains(other Window) bool {
	return w.Start.minutes <= other.Start.minutes && other.End.minutes <= w.End.minutes
}

// Duration in minutes.
func (w Window) Duration() int {
	return w.End.minutes - w.Start.minutes
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// ParseDate parses a calendar day (YYYY-MM-DD) as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(constant.CalendarFormat, value)
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value)) //nolint:wrapcheck
	}

	return date, nil
}

// IsDate reports whether value parses as a calendar day.
func IsDate(value string) bool {
	_, err := time.Parse(constant.CalendarFormat, value)

	return err == nil
}

// DateKey strips the time of day so dates compare as calendar days
// regardless of the location they were scanned in.
func DateKey(date time.Time) string {
	return date.Format(constant.CalendarFormat)
}

// SameDay compares two instants as calendar days.
func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}
