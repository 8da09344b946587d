// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"fmt"
	"strings"

	"github.com/xmidt-org/weekly-scheduler/weektime"
)

// Window is a recurring span of the week, start inclusive and end exclusive.
// A window whose end falls before its start wraps past the end of the week.
type Window struct {
	Start weektime.MinuteOffset
	End   weektime.MinuteOffset
}

// ParseWindow reads "<start> - <end>", for example
// "Friday 21.00 - Sunday 23.59".
func ParseWindow(s string) (Window, error) {
	start, end, found := strings.Cut(s, "-")
	if !found {
		return Window{}, fmt.Errorf("%w: window %q has no '-'", ErrInvalidInput, s)
	}

	var w Window
	var err error
	if w.Start, err = weektime.Parse(strings.TrimSpace(start)); err != nil {
		return Window{}, fmt.Errorf("%w: window start: %w", ErrInvalidInput, err)
	}
	if w.End, err = weektime.Parse(strings.TrimSpace(end)); err != nil {
		return Window{}, fmt.Errorf("%w: window end: %w", ErrInvalidInput, err)
	}

	return w, nil
}

// Contains reports whether the instant described by info is inside the
// window.
func (w Window) Contains(info weektime.DateInfo) bool {
	if w.End-w.Start >= weektime.MinutesInWeek {
		return true
	}

	start := inWeek(w.Start)
	end := inWeek(w.End)
	offset := inWeek(info.Offset)

	switch {
	case start < end:
		return start <= offset && offset < end
	case end < start:
		return start <= offset || offset < end
	default:
		return false
	}
}

func (w Window) String() string {
	return fmt.Sprintf("%s - %s", w.Start, w.End)
}

func inWeek(m weektime.MinuteOffset) weektime.MinuteOffset {
	m %= weektime.MinutesInWeek
	if m < 0 {
		m += weektime.MinutesInWeek
	}
	return m
}
