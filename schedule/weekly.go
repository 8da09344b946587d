// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xmidt-org/weekly-scheduler/weektime"
)

type weeklyEntry struct {
	Indexes []int  `codec:"indexes" yaml:"indexes"`
	At      string `codec:"at"      yaml:"at"`

	names  []string              `codec:"-" yaml:"-"`
	offset weektime.MinuteOffset `codec:"-" yaml:"-"`
}

func (entry *weeklyEntry) Finalize(names []string) error {
	at, err := weektime.Parse(entry.At)
	if err != nil {
		return fmt.Errorf("%w: 'at' value: %w", ErrInvalidInput, err)
	}
	// "Sunday 24.30" is half past midnight at the start of the week.
	entry.offset = at % weektime.MinutesInWeek

	entry.names = make([]string, len(entry.Indexes))
	for i, idx := range entry.Indexes {
		if idx < 0 || idx >= len(names) {
			return fmt.Errorf("%w: 'indexes' value out of bounds", ErrInvalidInput)
		}
		entry.names[i] = names[idx]
	}

	return nil
}

// weeklyList is a cyclic list of transitions: before the first transition
// of the week the last one still applies.
type weeklyList []weeklyEntry

func (p *weeklyList) Finalize(names []string) error {
	list := *p
	for i := range list {
		err := list[i].Finalize(names)
		if err != nil {
			return err
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].offset < list[j].offset
	})

	// Duplicate the last entry of the week to be negative time so it happens
	// the prior week & can seed the current week with the correct state.  Also
	// duplicate the first entry of the week and add a week of time to it so the
	// first change next week is easy to calculate.
	if len(list) > 0 {
		nextWeek := list[0]
		nextWeek.offset += weektime.MinutesInWeek

		priorWeek := list[len(list)-1]
		priorWeek.offset -= weektime.MinutesInWeek
		list = append([]weeklyEntry{priorWeek}, list...)
		*p = append(list, nextWeek)
	}

	return nil
}

// Len is the number of configured transitions, not counting the copies
// made by Finalize.
func (list weeklyList) Len() int {
	if len(list) < 2 {
		return len(list)
	}
	return len(list) - 2
}

func (list weeklyList) findIndex(offset weektime.MinuteOffset) int {
	var index int
	for i, entry := range list {
		if entry.offset <= offset {
			index = i
		}
	}
	return index
}

// Active returns the transition in effect at offset and the names it
// activates.
func (list weeklyList) Active(offset weektime.MinuteOffset) (at weektime.MinuteOffset, active []string) {
	if len(list) == 0 {
		return 0, nil
	}

	index := list.findIndex(offset)

	return list[index].offset, list[index].names
}

// Next returns the first transition after offset within the same week.
func (list weeklyList) Next(offset weektime.MinuteOffset) (weektime.MinuteOffset, bool) {
	if len(list) == 0 {
		return 0, false
	}

	// Look at the next entry; the last one belongs to next week.
	index := list.findIndex(offset) + 1
	if index >= len(list)-1 {
		return 0, false
	}

	return list[index].offset, true
}

// First returns the earliest transition of the week.
func (list weeklyList) First() (weektime.MinuteOffset, bool) {
	if len(list) == 0 {
		return 0, false
	}
	return list[1].offset, true
}

func (list weeklyList) dump(w io.Writer, indent string) {
	if len(list) == 0 {
		fmt.Fprintf(w, "%snone\n", indent)
		return
	}

	for _, entry := range list {
		names := strings.Join(entry.names, ", ")
		switch {
		case entry.offset < 0:
			fmt.Fprintf(w, "%sat: %s (prior week), active: [%s]\n", indent, entry.offset+weektime.MinutesInWeek, names)
		case entry.offset >= weektime.MinutesInWeek:
			fmt.Fprintf(w, "%sat: %s (next week), active: [%s]\n", indent, entry.offset-weektime.MinutesInWeek, names)
		default:
			fmt.Fprintf(w, "%sat: %s, active: [%s]\n", indent, entry.offset, names)
		}
	}
}
