// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package logger defines the logging interface taken by the blotto
// library packages, so they do not depend on a particular glog.
package logger

import (
	"fmt"
	"log"
)

// Logger is implemented by glog.Glog and by the loggers in this package.
type Logger interface {
	// Info logs at the info level
	Info(args ...interface{})
	// Infof logs at the info level, with format
	Infof(format string, args ...interface{})
	// Error logs at the error level
	Error(args ...interface{})
	// Errorf logs at the error level, with format
	Errorf(format string, args ...interface{})
}

// Std implements Logger using the stdlib "log" package.
var Std Logger = std{log.Default()}

type std struct {
	*log.Logger
}

func (l std) Info(args ...interface{}) {
	l.Output(2, fmt.Sprint(args...))
}

func (l std) Infof(format string, args ...interface{}) {
	l.Output(2, fmt.Sprintf(format, args...))
}

func (l std) Error(args ...interface{}) {
	l.Output(2, "ERROR: "+fmt.Sprint(args...))
}

func (l std) Errorf(format string, args ...interface{}) {
	l.Output(2, "ERROR: "+fmt.Sprintf(format, args...))
}

// Nop discards everything.
var Nop Logger = nop{}

type nop struct{}

func (nop) Info(...interface{})           {}
func (nop) Infof(string, ...interface{})  {}
func (nop) Error(...interface{})          {}
func (nop) Errorf(string, ...interface{}) {}
