// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package glog adapts github.com/aristanetworks/glog to logger.Logger.
package glog

import (
	"bytes"
	"io"

	"github.com/aristanetworks/glog"
)

// Glog passes glog as a logger.Logger. Info messages are logged at
// verbosity InfoLevel, so they only show with -v=InfoLevel or higher.
type Glog struct {
	InfoLevel glog.Level
}

// Info logs at the info level
func (g *Glog) Info(args ...interface{}) {
	glog.V(g.InfoLevel).Info(args...)
}

// Infof logs at the info level, with format
func (g *Glog) Infof(format string, args ...interface{}) {
	glog.V(g.InfoLevel).Infof(format, args...)
}

// Error logs at the error level
func (g *Glog) Error(args ...interface{}) {
	glog.Error(args...)
}

// Errorf logs at the error level, with format
func (g *Glog) Errorf(format string, args ...interface{}) {
	glog.Errorf(format, args...)
}

// SuppressLines drops every glog output line containing one of substrs
// until the returned function is called. Tests use it to hide errors they
// provoke on purpose:
//
//	reset := glog.SuppressLines(`unknown player "ghost"`)
//	defer reset()
func SuppressLines(substrs ...string) func() {
	fw := &filterWriter{}
	for _, s := range substrs {
		fw.suppress = append(fw.suppress, []byte(s))
	}
	prev := glog.SetOutput(fw)
	fw.out = prev
	return func() {
		if fw.err == nil && fw.pending.Len() > 0 {
			fw.pending.WriteTo(fw.out)
		}
		glog.SetOutput(prev)
	}
}

type filterWriter struct {
	out      io.Writer
	pending  bytes.Buffer
	suppress [][]byte
	err      error
}

func (fw *filterWriter) Write(data []byte) (int, error) {
	if fw.err != nil {
		return 0, fw.err
	}
	fw.pending.Write(data)
	for {
		i := bytes.IndexByte(fw.pending.Bytes(), '\n')
		if i < 0 {
			return len(data), nil
		}
		line := fw.pending.Next(i + 1)
		if fw.suppressed(line) {
			continue
		}
		if _, err := fw.out.Write(line); err != nil {
			fw.err = err
			return len(data), err
		}
	}
}

func (fw *filterWriter) suppressed(line []byte) bool {
	for _, s := range fw.suppress {
		if bytes.Contains(line, s) {
			return true
		}
	}
	return false
}
