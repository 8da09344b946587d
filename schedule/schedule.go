// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ugorji/go/codec"
	"gopkg.in/yaml.v3"

	"github.com/xmidt-org/weekly-scheduler/weektime"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Option configures a Schedule.
type Option func(*Schedule)

// WithLogger sets the logger used for decode and lookup events.  A nil
// logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Schedule) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Schedule maps points in the week onto sets of active names.  It is safe
// for concurrent use.
type Schedule struct {
	msgpack codec.Handle
	json    codec.Handle
	logger  *slog.Logger
	raw     schedule
	m       sync.Mutex
}

func New(opts ...Option) *Schedule {
	s := Schedule{
		msgpack: new(codec.MsgpackHandle),
		json:    new(codec.JsonHandle),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

// Load reads a schedule document, choosing the decoder by file extension:
// .yaml/.yml, .json, anything else is treated as msgpack.
func Load(path string, opts ...Option) (*Schedule, error) {
	in, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s := New(opts...)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = s.DecodeYAML(in)
	case ".json":
		err = s.DecodeJSON(in)
	default:
		err = s.Decode(in)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Decode replaces the schedule with a msgpack encoded document.
func (s *Schedule) Decode(in []byte) error {
	return s.decode("msgpack", func(raw *schedule) error {
		return codec.NewDecoderBytes(in, s.msgpack).Decode(raw)
	})
}

// DecodeJSON replaces the schedule with a JSON encoded document.
func (s *Schedule) DecodeJSON(in []byte) error {
	return s.decode("json", func(raw *schedule) error {
		return codec.NewDecoderBytes(in, s.json).Decode(raw)
	})
}

// DecodeYAML replaces the schedule with a YAML encoded document.
func (s *Schedule) DecodeYAML(in []byte) error {
	return s.decode("yaml", func(raw *schedule) error {
		return yaml.Unmarshal(in, raw)
	})
}

func (s *Schedule) decode(format string, fn func(*schedule) error) error {
	s.m.Lock()
	defer s.m.Unlock()

	var raw schedule
	err := fn(&raw)
	if err != nil {
		return err
	}

	err = raw.Finalize()
	if err != nil {
		return err
	}
	s.raw = raw

	s.logger.Info("schedule decoded",
		slog.String("format", format),
		slog.String("time_zone", raw.tz.String()),
		slog.Int("names", len(raw.Names)),
		slog.Int("weekly", raw.Weekly.Len()),
		slog.Int("overrides", len(raw.Overrides)),
	)

	return nil
}

// Active returns the names active at when.
func (s *Schedule) Active(when time.Time) []string {
	s.m.Lock()
	defer s.m.Unlock()

	info := s.raw.dateInfo(when)
	at, active := s.raw.weeklyFor(info).Active(info.Offset)

	s.logger.Debug("active lookup",
		slog.Int("year", info.Year),
		slog.Int("week", info.Week),
		slog.String("offset", info.Offset.String()),
		slog.Int("since", int(at)),
		slog.Any("active", active),
	)

	return slices.Clone(active)
}

// Until returns the time of the next transition strictly after when, or
// the zero time if the schedule has no transitions.  Where an overridden
// week begins or ends, the Monday 00:00 boundary counts as a transition if
// the active names change there.
func (s *Schedule) Until(when time.Time) time.Time {
	s.m.Lock()
	defer s.m.Unlock()

	info := s.raw.dateInfo(when)
	list := s.raw.weeklyFor(info)
	if next, ok := list.Next(info.Offset); ok {
		return next.Time(info.Time)
	}
	_, current := list.Active(info.Offset)

	// The next change is in a following week.  Overridden weeks may have
	// no transitions at all, so keep going while overrides remain.
	monday := info.Time
	for {
		monday = weektime.MinuteOffset(weektime.MinutesInWeek).Time(monday)
		following := weektime.GetDateInfo(monday)
		list = s.raw.weeklyFor(following)

		if _, seed := list.Active(0); !slices.Equal(seed, current) {
			s.logger.Debug("active names change at the start of a week",
				slog.Int("year", following.Year),
				slog.Int("week", following.Week),
			)
			return monday
		}
		if first, ok := list.First(); ok {
			s.logger.Debug("next transition in a following week",
				slog.Int("year", following.Year),
				slog.Int("week", following.Week),
				slog.String("at", first.String()),
			)
			return first.Time(monday)
		}
		if !s.raw.Overrides.pending(following.Year, following.Week) {
			return time.Time{}
		}
	}
}

func (s *Schedule) String() string {
	s.m.Lock()
	defer s.m.Unlock()

	return s.raw.String()
}

type schedule struct {
	TimeZone  string       `codec:"time_zone" yaml:"time_zone"`
	Names     []string     `codec:"names"     yaml:"names"`
	Weekly    weeklyList   `codec:"weekly"    yaml:"weekly"`
	Overrides overrideList `codec:"overrides" yaml:"overrides"`

	tz *time.Location `codec:"-" yaml:"-"`
}

func (s *schedule) Finalize() error {
	tz, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return fmt.Errorf("%w: 'time_zone' of '%s' invalid: %v", ErrInvalidInput, s.TimeZone, err)
	}
	s.tz = tz

	if err := s.Weekly.Finalize(s.Names); err != nil {
		return err
	}
	if err := s.Overrides.Finalize(s.Names); err != nil {
		return err
	}

	return nil
}

func (s *schedule) dateInfo(when time.Time) weektime.DateInfo {
	if s.tz != nil {
		when = when.In(s.tz)
	}
	return weektime.GetDateInfo(when)
}

func (s *schedule) weeklyFor(info weektime.DateInfo) weeklyList {
	if list, ok := s.Overrides.find(info.Year, info.Week); ok {
		return list
	}
	return s.Weekly
}

func (s schedule) String() string {
	var buf strings.Builder

	fmt.Fprintln(&buf, "schedule {")
	fmt.Fprintln(&buf, "\ttime_zone:")
	fmt.Fprintf(&buf, "\t\trequested: %q\n", s.TimeZone)
	fmt.Fprintf(&buf, "\t\tactual:    %q\n", s.tz)
	fmt.Fprintf(&buf, "\tname_count:  %d\n", len(s.Names))
	for i, name := range s.Names {
		fmt.Fprintf(&buf, "\t\t[%d]: %q\n", i, name)
	}

	fmt.Fprintln(&buf, "\tweekly:")
	s.Weekly.dump(&buf, "\t\t")

	fmt.Fprintln(&buf, "\toverrides:")
	if len(s.Overrides) == 0 {
		fmt.Fprintln(&buf, "\t\tnone")
	} else {
		for _, o := range s.Overrides {
			fmt.Fprintf(&buf, "\t\t%d-W%02d:\n", o.Year, o.Week)
			o.Weekly.dump(&buf, "\t\t\t")
		}
	}
	fmt.Fprintln(&buf, "}")

	return buf.String()
}
