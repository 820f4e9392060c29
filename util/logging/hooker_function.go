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
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

const maxCallerDepth = 16

type functionHooker struct{}

// NewFunctionHooker returns a hook that records the calling file, line and
// function of each entry.
func NewFunctionHooker() logrus.Hook {
	return &functionHooker{}
}

func (h *functionHooker) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *functionHooker) Fire(entry *logrus.Entry) error {
	pc := make([]uintptr, maxCallerDepth)
	n := runtime.Callers(4, pc)
	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if !isLoggingFrame(frame.File) {
			entry.Data["line"] = frame.Line
			entry.Data["func"] = path.Base(frame.Function)
			entry.Data["file"] = filepath.Base(frame.File)
			return nil
		}
		if !more {
			return nil
		}
	}
}

func isLoggingFrame(file string) bool {
	return strings.Contains(file, "sirupsen") || strings.HasSuffix(file, "util/logging/exported.go")
}
