// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmidt-org/weekly-scheduler/weektime"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		description string
		in          string
		expected    Window
		err         error
	}{
		{
			description: "weekend block",
			in:          "Friday 21.00 - Sunday 23.59",
			expected:    Window{Start: 7020, End: 10079},
		}, {
			description: "no spaces",
			in:          "Monday 08.00-Monday 17.30",
			expected:    Window{Start: 480, End: 1050},
		}, {
			description: "past midnight",
			in:          "Sunday 22.00 - Sunday 26.00",
			expected:    Window{Start: 9960, End: 10200},
		}, {
			description: "missing separator",
			in:          "Friday 21.00",
			err:         ErrInvalidInput,
		}, {
			description: "bad start",
			in:          "Someday 21.00 - Sunday 23.59",
			err:         weektime.ErrUnknownWeekday,
		}, {
			description: "bad end",
			in:          "Friday 21.00 - Sunday 23.60",
			err:         weektime.ErrMinuteOutOfRange,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			got, err := ParseWindow(tc.in)
			if tc.err != nil {
				assert.ErrorIs(err, tc.err)
				assert.ErrorIs(err, ErrInvalidInput)
				return
			}

			require.NoError(t, err)
			assert.Equal(tc.expected, got)
		})
	}
}

func TestWindowContains(t *testing.T) {
	at := func(s string) weektime.DateInfo {
		offset, err := weektime.Parse(s)
		require.NoError(t, err)
		return weektime.DateInfo{Offset: offset}
	}

	tests := []struct {
		description string
		window      string
		inside      []string
		outside     []string
	}{
		{
			description: "same week",
			window:      "Friday 21.00 - Sunday 23.59",
			inside:      []string{"Friday 21.00", "Saturday 12.00", "Sunday 23.58"},
			outside:     []string{"Friday 20.59", "Sunday 23.59", "Monday 00.00"},
		}, {
			description: "wraps past the end of the week",
			window:      "Sunday 22.00 - Sunday 26.00",
			inside:      []string{"Sunday 22.00", "Sunday 23.59", "Monday 00.00", "Monday 01.59"},
			outside:     []string{"Sunday 21.59", "Monday 02.00", "Wednesday 12.00"},
		}, {
			description: "end written before start",
			window:      "Saturday 18.00 - Monday 06.00",
			inside:      []string{"Saturday 18.00", "Sunday 12.00", "Monday 05.59"},
			outside:     []string{"Monday 06.00", "Friday 12.00", "Saturday 17.59"},
		}, {
			description: "empty",
			window:      "Tuesday 10.00 - Tuesday 10.00",
			outside:     []string{"Tuesday 10.00", "Monday 00.00", "Sunday 23.59"},
		}, {
			description: "a full week",
			window:      "Monday 00.00 - Sunday 48.00",
			inside:      []string{"Monday 00.00", "Thursday 15.30", "Sunday 23.59"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert := assert.New(t)

			w, err := ParseWindow(tc.window)
			require.NoError(t, err)

			for _, s := range tc.inside {
				assert.True(w.Contains(at(s)), s)
			}
			for _, s := range tc.outside {
				assert.False(w.Contains(at(s)), s)
			}
		})
	}
}

func TestWindowString(t *testing.T) {
	w := Window{Start: 7020, End: 10139}
	assert.Equal(t, "Friday 21.00 - Sunday 24.59", w.String())
}
