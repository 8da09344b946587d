// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package weektime

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	minutesInHour = 60
	minutesInDay  = 24 * minutesInHour

	// MinutesInWeek is the length of one week in minutes.  MinuteOffset never
	// reduces by it; it is provided for callers doing range checks.
	MinutesInWeek = 7 * minutesInDay

	lastWeekday = 6
)

var (
	ErrInvalidScheduleString = errors.New("invalid schedule string")

	ErrUnknownWeekday    = fmt.Errorf("%w: unknown weekday", ErrInvalidScheduleString)
	ErrMinuteOutOfRange  = fmt.Errorf("%w: minute out of range", ErrInvalidScheduleString)
	ErrHourOutOfRange    = fmt.Errorf("%w: hour out of range", ErrInvalidScheduleString)
	ErrMalformedSchedule = fmt.Errorf("%w: expected '<Weekday> <HH>.<MM>'", ErrInvalidScheduleString)
)

var weekdayNames = [7]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

var weekdayIndexes = func() map[string]int {
	m := make(map[string]int, len(weekdayNames))
	for i, name := range weekdayNames {
		m[name] = i
	}
	return m
}()

// WeekdayName returns the English name of the zero-indexed weekday
// (Monday=0).
func WeekdayName(index int) (string, bool) {
	if index < 0 || index > lastWeekday {
		return "", false
	}
	return weekdayNames[index], true
}

// WeekdayIndex is the reverse of WeekdayName.  The match is case-sensitive.
func WeekdayIndex(name string) (int, bool) {
	i, ok := weekdayIndexes[name]
	return i, ok
}

// MinuteOffset is the number of minutes elapsed since Monday 00:00.
//
// The canonical text form is "<Weekday> <HH>.<MM>", for example
// "Friday 21.00".  The hour is allowed to go past 23 so a point after
// midnight can be written relative to the prior day ("Friday 26.30").
type MinuteOffset int

// FromIntegers composes an offset without normalizing the hour into
// additional weekdays.
func FromIntegers(weekday, hour, minute int) MinuteOffset {
	return MinuteOffset(weekday*minutesInDay + hour*minutesInHour + minute)
}

// Parse converts the canonical text form into an offset.
func Parse(s string) (MinuteOffset, error) {
	name, clock, found := strings.Cut(s, " ")
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSchedule, s)
	}

	weekday, ok := WeekdayIndex(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
	}

	hh, mm, found := strings.Cut(clock, ".")
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrMalformedSchedule, s)
	}

	hour, err := parseField(hh)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s", ErrHourOutOfRange, hh)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: hour %q", ErrMalformedSchedule, hh)
	}
	minute, err := parseField(mm)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s", ErrMinuteOutOfRange, mm)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: minute %q", ErrMalformedSchedule, mm)
	}
	if minute >= minutesInHour {
		return 0, fmt.Errorf("%w: %d", ErrMinuteOutOfRange, minute)
	}
	// The hour has no upper bound of its own, only the size of an int.
	if hour > (math.MaxInt-weekday*minutesInDay-minute)/minutesInHour {
		return 0, fmt.Errorf("%w: %d", ErrHourOutOfRange, hour)
	}

	return FromIntegers(weekday, hour, minute), nil
}

// parseField accepts a non-empty run of decimal digits.
func parseField(s string) (int, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.Atoi(s)
}

// Components splits the offset the way String renders it.  The weekday
// stops at Sunday; anything beyond the start of Sunday stays in the hour.
// Negative offsets are not positions in the week and come out as zero.
func (m MinuteOffset) Components() (weekday, hour, minute int) {
	if m < 0 {
		return 0, 0, 0
	}
	weekday = min(int(m)/minutesInDay, lastWeekday)
	rem := int(m) - weekday*minutesInDay
	return weekday, rem / minutesInHour, rem % minutesInHour
}

func (m MinuteOffset) String() string {
	weekday, hour, minute := m.Components()
	return fmt.Sprintf("%s %02d.%02d", weekdayNames[weekday], hour, minute)
}

// Time returns the instant the offset designates in the week containing
// relativeTo, in relativeTo's location.
func (m MinuteOffset) Time(relativeTo time.Time) time.Time {
	mon := relativeTo.AddDate(0, 0, -isoWeekday(relativeTo))
	return time.Date(mon.Year(), mon.Month(), mon.Day(), 0, int(m), 0, 0, mon.Location())
}

func (m MinuteOffset) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MinuteOffset) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
