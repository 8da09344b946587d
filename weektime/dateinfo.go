// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package weektime

import "time"

// DateInfo is the position of an instant within its ISO 8601 week.
type DateInfo struct {
	Time    time.Time
	Year    int
	Week    int
	Weekday int // Monday=0 ... Sunday=6
	Offset  MinuteOffset
}

// GetDateInfo decomposes when in its own location.  Seconds and anything
// finer are dropped from the offset.
func GetDateInfo(when time.Time) DateInfo {
	year, week := when.ISOWeek()
	weekday := isoWeekday(when)

	return DateInfo{
		Time:    when,
		Year:    year,
		Week:    week,
		Weekday: weekday,
		Offset:  FromIntegers(weekday, when.Hour(), when.Minute()),
	}
}

// isoWeekday maps time.Weekday (Sunday=0) onto Monday=0.
func isoWeekday(when time.Time) int {
	return (int(when.Weekday()) + 6) % 7
}
