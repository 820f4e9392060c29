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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

// NewFileRotateHooker returns a hook writing every entry to an hourly rotated
// file under path.
func NewFileRotateHooker(path string, age uint32) (logrus.Hook, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("log folder %s: %v", path, err)
	}
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("create log folder %s: %v", path, err)
	}

	options := []rotatelogs.Option{
		rotatelogs.WithLinkName(filepath.Join(path, "keyrecover.log")),
		rotatelogs.WithRotationTime(time.Hour),
	}
	if age > 0 {
		options = append(options, rotatelogs.WithMaxAge(time.Duration(age)*time.Second))
	}
	writer, err := rotatelogs.New(filepath.Join(path, "keyrecover-%Y%m%d%H.log"), options...)
	if err != nil {
		return nil, fmt.Errorf("rotate logs: %v", err)
	}

	writerMap := make(lfshook.WriterMap)
	for _, level := range logrus.AllLevels {
		writerMap[level] = writer
	}
	return lfshook.NewHook(writerMap, &logrus.JSONFormatter{}), nil
}
