// Copyright © 2022 Alibaba Group Holding Ltd.
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

// Package logger configures the process-wide logrus logger of the command
// line tools.
package logger

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type LogOptions struct {
	// Verbose enables debug messages.
	Verbose bool
	// DisableColor disables ANSI colors.
	DisableColor bool
	// ReportCaller adds the file and line of the log call.
	ReportCaller bool
	// OutputPath, when set, receives a copy of every entry.
	OutputPath string
	// Output defaults to stderr.
	Output io.Writer
}

// Init applies options to the standard logrus logger. The returned closer
// releases the log file, if any.
func Init(options LogOptions) (io.Closer, error) {
	if options.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.SetReportCaller(options.ReportCaller)

	logrus.SetFormatter(&Formatter{
		DisableColor: options.DisableColor,
	})

	out := options.Output
	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if options.OutputPath != "" {
		f, err := os.OpenFile(options.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open log file %s", options.OutputPath)
		}
		out = io.MultiWriter(out, f)
		closer = f
	}
	logrus.SetOutput(out)

	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
