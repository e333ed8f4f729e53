// Package monitoring holds the process-wide diagnostic loggers.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf receives verbose per-request detail (URLs, row counts). It is muted
// until SetDebugLogger installs a sink.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	Logf = orNoop(f)
}

// SetDebugLogger replaces the debug logger. Passing nil mutes it.
func SetDebugLogger(f func(format string, v ...interface{})) {
	Debugf = orNoop(f)
}

func orNoop(f func(format string, v ...interface{})) func(string, ...interface{}) {
	if f == nil {
		return func(string, ...interface{}) {}
	}
	return f
}
