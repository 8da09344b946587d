// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"fmt"
	"sort"
	"time"
)

// overrideEntry replaces the weekly transitions for one ISO week.
type overrideEntry struct {
	Year   int        `codec:"year"   yaml:"year"`
	Week   int        `codec:"week"   yaml:"week"`
	Weekly weeklyList `codec:"weekly" yaml:"weekly"`
}

func (entry *overrideEntry) Finalize(names []string) error {
	// December 28th is always in the last ISO week of its year.
	_, last := time.Date(entry.Year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	if entry.Week < 1 || entry.Week > last {
		return fmt.Errorf("%w: 'week' %d out of range for %d", ErrInvalidInput, entry.Week, entry.Year)
	}

	return entry.Weekly.Finalize(names)
}

type overrideList []overrideEntry

func (list overrideList) Finalize(names []string) error {
	sort.Slice(list, func(i, j int) bool {
		if list[i].Year != list[j].Year {
			return list[i].Year < list[j].Year
		}
		return list[i].Week < list[j].Week
	})

	for i := range list {
		if i > 0 && list[i].Year == list[i-1].Year && list[i].Week == list[i-1].Week {
			return fmt.Errorf("%w: duplicate override for %d-W%02d", ErrInvalidInput, list[i].Year, list[i].Week)
		}

		err := list[i].Finalize(names)
		if err != nil {
			return err
		}
	}

	return nil
}

func (list overrideList) find(year, week int) (weeklyList, bool) {
	i := sort.Search(len(list), func(i int) bool {
		if list[i].Year != year {
			return list[i].Year > year
		}
		return list[i].Week >= week
	})
	if i < len(list) && list[i].Year == year && list[i].Week == week {
		return list[i].Weekly, true
	}
	return nil, false
}

// pending reports whether any override applies to the given ISO week or a
// later one.
func (list overrideList) pending(year, week int) bool {
	if len(list) == 0 {
		return false
	}
	last := list[len(list)-1]
	return last.Year > year || (last.Year == year && last.Week >= week)
}
