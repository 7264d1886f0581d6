// Copyright 2025 go-spmd Authors
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

// Package logging holds the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.Mutex
	log *logrus.Logger
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// Init configures the logger. An unknown level falls back to info and
// is reported through the returned error so callers can warn about it.
func Init(level string, out io.Writer) error {
	l := Get()
	if out != nil {
		l.SetOutput(out)
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
		return err
	}
	l.SetLevel(lvl)
	return nil
}

// Get returns the logger, creating it on first use. Until Init is called
// only warnings and errors are emitted.
func Get() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = newLogger()
	}
	return log
}

// WithField starts an entry carrying one structured field.
func WithField(key string, value any) *logrus.Entry {
	return Get().WithField(key, value)
}

// WithFields starts an entry carrying several structured fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Get().WithFields(fields)
}

func Debugf(format string, args ...any) {
	Get().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	Get().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	Get().Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	Get().Errorf(format, args...)
}
