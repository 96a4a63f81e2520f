// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

// Package log provides the leveled, package tagged logrus loggers shared by
// the library and the fat-cli.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

var std = func() *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true,
		DisableTimestamp:       true,
		DisableLevelTruncation: true}
	return log
}()

// Log is a logrus.Entry tagged with the name of the package that logs to it.
type Log struct {
	*logrus.Entry
}

// New returns a Log whose entries carry the field pkg.
func New(pkg string) Log {
	return Log{Entry: std.WithField("pkg", pkg)}
}

// SetDebug enables or disables debug level output for all Logs.
func SetDebug(debug bool) {
	if debug {
		std.SetLevel(logrus.DebugLevel)
		return
	}
	std.SetLevel(logrus.InfoLevel)
}

// SetOutput redirects all Logs to w.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}
