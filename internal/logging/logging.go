// Package logging wraps the standard library logger with the startup-time
// fatal-error convention the teacher uses throughout
// monitoring/monitor.go's dieOnErr helper: wiring failures (engine connect,
// model load) are fatal, everything else is a plain log line, per spec.md
// §7's "only startup-time wiring errors are surfaced to the user" policy.
package logging

import (
	"log"
	"os"
)

// Logger is a thin wrapper around the standard logger, prefixed per
// component the way the teacher tags its monitor/engine log lines.
type Logger struct {
	*log.Logger
}

// New returns a Logger that prefixes every line with "[component] ".
func New(component string) *Logger {
	return &Logger{Logger: log.New(os.Stderr, "["+component+"] ", log.LstdFlags)}
}

// DieOnErr logs err and exits the process with status 1 if err is non-nil.
// Used exclusively at startup wiring points, per spec.md §7
// (EngineUnavailable/ModelUnavailable are fatal at startup only).
func (l *Logger) DieOnErr(err error) {
	if err == nil {
		return
	}

	l.Logger.Fatal(err)
}
