// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// weekcheck shows where an instant falls in its week and, optionally, what
// a schedule file or a window says about it.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/xmidt-org/weekly-scheduler/schedule"
	"github.com/xmidt-org/weekly-scheduler/weektime"
)

const (
	exitInside  = 0
	exitOutside = 1
	exitUsage   = 2
)

type options struct {
	at       string
	tz       string
	schedule string
	window   string
	logLevel string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

func run(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	var opts options

	fs := pflag.NewFlagSet("weekcheck", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.at, "at", "", "instant to check in RFC3339 (default now)")
	fs.StringVar(&opts.tz, "tz", "", "IANA time zone to view the instant in (default the instant's own)")
	fs.StringVarP(&opts.schedule, "schedule", "s", "", "schedule file (.yaml, .json or msgpack)")
	fs.StringVarP(&opts.window, "window", "w", "", `window such as "Friday 21.00 - Sunday 23.59"`)
	fs.StringVar(&opts.logLevel, "log-level", "error", "debug, info or error")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level, err := parseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	when := now()
	if opts.at != "" {
		when, err = time.Parse(time.RFC3339, opts.at)
		if err != nil {
			logger.Error("invalid --at", errAttr(err))
			return exitUsage
		}
	}
	if opts.tz != "" {
		loc, err := time.LoadLocation(opts.tz)
		if err != nil {
			logger.Error("invalid --tz", errAttr(err))
			return exitUsage
		}
		when = when.In(loc)
	}

	info := weektime.GetDateInfo(when)
	fmt.Fprintf(stdout, "time:    %s\n", info.Time.Format(time.RFC3339))
	fmt.Fprintf(stdout, "week:    %d-W%02d\n", info.Year, info.Week)
	fmt.Fprintf(stdout, "weekday: %d\n", info.Weekday)
	fmt.Fprintf(stdout, "offset:  %d (%s)\n", info.Offset, info.Offset)

	if opts.schedule != "" {
		s, err := schedule.Load(opts.schedule, schedule.WithLogger(logger))
		if err != nil {
			logger.Error("failed to load schedule", slog.String("path", opts.schedule), errAttr(err))
			return exitUsage
		}

		fmt.Fprintf(stdout, "active:  [%s]\n", strings.Join(s.Active(when), ", "))
		if next := s.Until(when); !next.IsZero() {
			fmt.Fprintf(stdout, "next:    %s\n", next.Format(time.RFC3339))
		}
	}

	if opts.window != "" {
		w, err := schedule.ParseWindow(opts.window)
		if err != nil {
			logger.Error("invalid --window", errAttr(err))
			return exitUsage
		}

		inside := w.Contains(info)
		fmt.Fprintf(stdout, "window:  %s inside=%t\n", w, inside)
		if !inside {
			return exitOutside
		}
	}

	return exitInside
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

func errAttr(err error) slog.Attr {
	return slog.String("error", err.Error())
}
