// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the structured logger used throughout the ledger.
type Logger interface {
	Debug(msg string, keyVals ...interface{})
	Info(msg string, keyVals ...interface{})
	Error(msg string, keyVals ...interface{})
	With(keyVals ...interface{}) Logger
}

// ZeroLogger passes messages to a Zerolog logger.
type ZeroLogger struct {
	Zerolog zerolog.Logger
	Trace   bool
}

// New creates a logger that writes to w at the given level. Format may be
// "plain" or "json".
func New(w io.Writer, format, level string) (Logger, error) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %v", err)
	}

	w, err = NewWriter(w, format)
	if err != nil {
		return nil, err
	}

	zl := zerolog.New(w).Level(logLevel).With().Timestamp().Logger()
	return &ZeroLogger{Zerolog: zl}, nil
}

// NewWriter creates a log writer. Format may be "plain" or "json".
func NewWriter(w io.Writer, format string) (io.Writer, error) {
	switch strings.ToLower(format) {
	case "plain", "":
		return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}, nil
	case "json":
		return w, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func (l *ZeroLogger) Debug(msg string, keyVals ...interface{}) {
	l.Zerolog.Debug().Fields(getLogFields(keyVals...)).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, keyVals ...interface{}) {
	l.Zerolog.Info().Fields(getLogFields(keyVals...)).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, keyVals ...interface{}) {
	e := l.Zerolog.Error()
	if l.Trace {
		e = e.Stack()
	}

	e.Fields(getLogFields(keyVals...)).Msg(msg)
}

func (l *ZeroLogger) With(keyVals ...interface{}) Logger {
	return &ZeroLogger{
		Zerolog: l.Zerolog.With().Fields(getLogFields(keyVals...)).Logger(),
		Trace:   l.Trace,
	}
}

func getLogFields(keyVals ...interface{}) map[string]interface{} {
	if len(keyVals)%2 != 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(keyVals))
	for i := 0; i < len(keyVals); i += 2 {
		fields[fmt.Sprint(keyVals[i])] = keyVals[i+1]
	}

	return fields
}
