// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the shared structured logger for slashdeck.
//
// The picker runs inside an interactive terminal UI, so deployments
// normally point log.path at a file; stderr is the fallback when no
// path is configured.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is the process-wide logger. Packages either use the package
// funcs below or derive a component logger with New.
var Logger = log.New(os.Stderr)

func init() {
	Logger.SetLevel(log.InfoLevel)
	Logger.SetReportTimestamp(true)
}

// Configure sets the level and output destination. An empty path keeps
// the current output. Level strings follow charmbracelet/log names;
// unknown levels fall back to info.
func Configure(level, path string) error {
	var output io.Writer = os.Stderr
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		output = f
	}

	Logger = log.New(output)
	Logger.SetReportTimestamp(true)
	Logger.SetLevel(parseLevel(level))
	return nil
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New returns a component logger with the given prefix, sharing the
// global level and output.
func New(prefix string) *log.Logger {
	l := Logger.WithPrefix(prefix)
	return l
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) { Logger.Debug(msg, keyvals...) }

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) { Logger.Info(msg, keyvals...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) { Logger.Warn(msg, keyvals...) }

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) { Logger.Error(msg, keyvals...) }
