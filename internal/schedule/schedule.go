// Package schedule holds the time-range and sort logic shared by the course
// endpoints: 12-hour display formatting, the half-hour slot grid offered by
// the editor, and the user-selectable list ordering.
package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jomadlcrz/class-schedule-backend/internal/model"
)

// RangeSeparator joins the two endpoints of a stored time range.
const RangeSeparator = " - "

// Slot grid bounds, in minutes since midnight. The editor offers every
// half hour from 07:00 to 21:00 inclusive.
const (
	slotFirstMinute = 7 * 60
	slotLastMinute  = 21 * 60
	slotStepMinutes = 30
)

// Range validation errors. Their messages are surfaced verbatim to the
// client in the {"message"} error body.
var (
	ErrInvalidRange = errors.New("Invalid time format, expected HH:MM - HH:MM")
	ErrOffGrid      = errors.New("Time must be on a half-hour slot between 07:00 and 21:00")
	ErrEndNotAfter  = errors.New("End time must be later than start time")
)

// Slots returns the discrete time values offered for both endpoints of a
// course time range, zero-padded 24-hour HH:MM.
func Slots() []string {
	slots := make([]string, 0, (slotLastMinute-slotFirstMinute)/slotStepMinutes+1)
	for m := slotFirstMinute; m <= slotLastMinute; m += slotStepMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// ValidateRange checks a stored-form time range: both endpoints well formed
// and on the slot grid, end strictly after start.
func ValidateRange(timeRange string) error {
	start, end, ok := splitRange(timeRange)
	if !ok {
		return ErrInvalidRange
	}

	startMin, err := parseMinutes(start)
	if err != nil {
		return ErrInvalidRange
	}
	endMin, err := parseMinutes(end)
	if err != nil {
		return ErrInvalidRange
	}

	if !onGrid(startMin) || !onGrid(endMin) {
		return ErrOffGrid
	}
	if endMin <= startMin {
		return ErrEndNotAfter
	}
	return nil
}

// FormatRange converts a stored "HH:MM - HH:MM" range to 12-hour display
// form with AM/PM suffixes. Malformed input is returned unchanged rather
// than failing.
func FormatRange(timeRange string) string {
	start, end, ok := splitRange(timeRange)
	if !ok {
		return timeRange
	}

	startDisp, ok := formatClock(start)
	if !ok {
		return timeRange
	}
	endDisp, ok := formatClock(end)
	if !ok {
		return timeRange
	}

	return startDisp + RangeSeparator + endDisp
}

// StartKey returns the sortable start-time substring of a range: the text
// preceding the separator, or the whole string when no separator exists.
// Lexicographic comparison on it is correct because stored values are
// zero-padded 24-hour HH:MM.
func StartKey(timeRange string) string {
	if start, _, ok := splitRange(timeRange); ok {
		return start
	}
	return strings.TrimSpace(timeRange)
}

// SortKeys lists the user-selectable sort fields.
var SortKeys = []string{"courseCode", "title", "units", "days", "time", "room", "instructor"}

// IsSortKey reports whether key is a valid user-selectable sort field.
func IsSortKey(key string) bool {
	for _, k := range SortKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Sort returns a copy of courses ordered by the given key and direction
// ("asc" or "desc"). All keys compare case-insensitively on the full field
// value except "time", which compares only the start-time substring.
func Sort(courses []model.Course, key, direction string) []model.Course {
	sorted := make([]model.Course, len(courses))
	copy(sorted, courses)

	less := func(a, b model.Course) bool {
		if key == "time" {
			return StartKey(a.Time) < StartKey(b.Time)
		}
		return strings.ToLower(fieldValue(a, key)) < strings.ToLower(fieldValue(b, key))
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == "desc" {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func fieldValue(c model.Course, key string) string {
	switch key {
	case "courseCode":
		return c.CourseCode
	case "title":
		return c.Title
	case "units":
		return strconv.Itoa(c.Units)
	case "days":
		return c.Days
	case "time":
		return c.Time
	case "room":
		return c.Room
	case "instructor":
		return c.Instructor
	default:
		return ""
	}
}

func splitRange(timeRange string) (start, end string, ok bool) {
	parts := strings.Split(timeRange, RangeSeparator)
	if len(parts) != 2 {
		return "", "", false
	}
	start = strings.TrimSpace(parts[0])
	end = strings.TrimSpace(parts[1])
	if start == "" || end == "" {
		return "", "", false
	}
	return start, end, true
}

// parseMinutes converts "HH:MM" to minutes since midnight.
func parseMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("malformed clock value %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("malformed hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("malformed minute in %q", clock)
	}
	return hour*60 + minute, nil
}

func onGrid(minutes int) bool {
	return minutes >= slotFirstMinute &&
		minutes <= slotLastMinute &&
		minutes%slotStepMinutes == 0
}

// formatClock converts one "HH:MM" endpoint to zero-padded 12-hour form
// with an AM/PM suffix.
func formatClock(clock string) (string, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return "", false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", false
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	displayHour := hour
	switch {
	case hour > 12:
		displayHour = hour - 12
	case hour == 0:
		displayHour = 12
	}

	return fmt.Sprintf("%02d:%s %s", displayHour, parts[1], period), true
}
