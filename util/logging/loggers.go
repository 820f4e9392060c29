// Copyright (C) 2018  MediBloc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>

package logging

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var (
	clog *logrus.Logger
	vlog *logrus.Logger
)

// Console returns the console logger. It writes to stderr so that recovered
// keys printed on stdout stay separate from log output.
func Console() *logrus.Logger {
	if clog == nil {
		initDefault()
	}
	return clog
}

func vLog() *logrus.Logger {
	if vlog == nil {
		initDefault()
	}
	return vlog
}

func initDefault() {
	if err := Init("", "info", 0); err != nil {
		panic(err)
	}
}

// Init configures both loggers. An empty path disables the rotating log file.
// age is the number of seconds rotated files are kept; zero keeps them forever.
func Init(path string, level string, age uint32) error {
	levelNo, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}

	hooks := []logrus.Hook{NewFunctionHooker(), NewRedactHooker()}
	if path != "" {
		fileHooker, err := NewFileRotateHooker(path, age)
		if err != nil {
			return err
		}
		hooks = append(hooks, fileHooker)
	}

	clog = newLogger(os.Stderr, logrus.InfoLevel, hooks)
	vlog = newLogger(ioutil.Discard, levelNo, hooks)

	vLog().WithFields(logrus.Fields{
		"path":  path,
		"level": level,
	}).Debug("Logger configured.")
	return nil
}

func newLogger(out io.Writer, level logrus.Level, hooks []logrus.Hook) *logrus.Logger {
	l := logrus.New()
	for _, h := range hooks {
		l.Hooks.Add(h)
	}
	l.Out = out
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.Level = level
	return l
}

// TestHook replaces both loggers with a null logger and returns its hook.
// Secret fields are still redacted.
func TestHook() *test.Hook {
	logger := logrus.New()
	logger.Out = ioutil.Discard
	logger.Level = logrus.DebugLevel
	logger.Hooks.Add(NewRedactHooker())
	hook := test.NewLocal(logger)
	clog = logger
	vlog = logger
	return hook
}
