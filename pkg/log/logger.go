// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"log"
	"os"
)

// Logger describes a logger to be used in gffkit.
type Logger interface {
	// Debugf logs a debug message. Suppressed unless debug output is
	// enabled.
	Debugf(format string, args ...interface{})

	// Warnf logs a warning message.
	Warnf(format string, args ...interface{})

	// Errorf logs an error message.
	Errorf(format string, args ...interface{})

	// Fatalf logs a fatal message and immediately exits the application
	// with os.Exit.
	Fatalf(format string, args ...interface{})
}

// DefaultLogger is the logger used by default everywhere within gffkit.
var DefaultLogger Logger

func init() {
	DefaultLogger = &logWrapper{Logger: log.New(os.Stderr, "", log.LstdFlags)}
}

// EnableDebug turns on debug output of the default logger.
func EnableDebug() {
	if l, ok := DefaultLogger.(*logWrapper); ok {
		l.Debug = true
	}
}

type logWrapper struct {
	Logger *log.Logger
	Debug  bool
}

// Debugf implements Logger.
func (logger *logWrapper) Debugf(format string, args ...interface{}) {
	if !logger.Debug {
		return
	}
	logger.Logger.Printf("[gffkit][DEBUG] "+format, args...)
}

// Warnf implements Logger.
func (logger *logWrapper) Warnf(format string, args ...interface{}) {
	logger.Logger.Printf("[gffkit][WARN] "+format, args...)
}

// Errorf implements Logger.
func (logger *logWrapper) Errorf(format string, args ...interface{}) {
	logger.Logger.Printf("[gffkit][ERROR] "+format, args...)
}

// Fatalf implements Logger.
func (logger *logWrapper) Fatalf(format string, args ...interface{}) {
	logger.Logger.Fatalf("[gffkit][FATAL] "+format, args...)
}

// Debugf logs a debug message through the default logger.
func Debugf(format string, args ...interface{}) {
	DefaultLogger.Debugf(format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	DefaultLogger.Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	DefaultLogger.Errorf(format, args...)
}

// Fatalf logs a fatal message and immediately exits the application
// with os.Exit (which is expected to be called by the DefaultLogger.Fatalf).
func Fatalf(format string, args ...interface{}) {
	DefaultLogger.Fatalf(format, args...)
}
