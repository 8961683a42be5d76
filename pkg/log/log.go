// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 🎨 Rotation settings for the optional log file
const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 30
)

// 🔧 Options configures the run logger
type Options struct {
	// Console receives human readable output, usually os.Stderr
	Console io.Writer
	// File, when set, also receives JSON lines through a rotating writer
	File string
	// Debug lowers the level from info to debug
	Debug bool
	// NoColor disables colors in the console writer
	NoColor bool
}

// 🎯 Logger wraps the zerolog logger with the file it may own
type Logger struct {
	zerolog.Logger
	file   *lumberjack.Logger
	closed bool
}

// 🏭 New creates a logger writing to the console and, optionally, a log file
func New(opts Options) *Logger {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: console, NoColor: opts.NoColor, TimeFormat: "15:04:05"},
	}

	l := &Logger{}
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
			MaxAge:     maxLogAgeDays,
		}
		writers = append(writers, l.file)
	}

	l.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return l
}

// WithContext attaches the logger to ctx, retrievable with zerolog.Ctx
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	l.closed = true
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Closed reports whether Close was called
func (l *Logger) Closed() bool {
	return l.closed
}
