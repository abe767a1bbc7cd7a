// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logging provides the printf-style log helpers used across the
// job manager and its command line front end.
package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	logger   = newLogger(os.Stderr)
	exitFunc = os.Exit
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	setSink(l, w)
	return l
}

func setSink(l *logrus.Logger, w io.Writer) {
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    !isTerminal(w),
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetOutput redirects all log output to w, keeping the current level.
// Colour is only used when w is a terminal.
func SetOutput(w io.Writer) {
	setSink(logger, w)
	color.NoColor = !isTerminal(w)
}

// SetDebug enables or disables debug-level messages.
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}

// Info logs an informational message.
func Info(f string, a ...any) {
	logger.Infof(f, a...)
}

// Debug logs a message only visible after SetDebug(true).
func Debug(f string, a ...any) {
	logger.Debugf(f, a...)
}

// Warn logs a highlighted warning.
func Warn(f string, a ...any) {
	logger.Warn(color.YellowString(f, a...))
}

// Error logs a highlighted error without exiting.
func Error(f string, a ...any) {
	logger.Error(color.RedString(f, a...))
}

// Fatal logs an error and exits with status 1.
func Fatal(f string, a ...any) {
	logger.Log(logrus.FatalLevel, color.RedString(f, a...))
	exitFunc(1)
}
