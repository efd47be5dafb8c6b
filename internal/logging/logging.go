package logging

import (
	"log"
	"os"
)

// Logger writes leveled messages to the console. It stays deliberately
// thin: the orchestrator's output is read by a human tailing the
// process, not shipped anywhere.
type Logger struct {
	*log.Logger
}

// NewLogger returns a Logger writing timestamped lines to stdout.
func NewLogger() *Logger {
	return &Logger{
		Logger: log.New(os.Stdout, "", log.LstdFlags),
	}
}

// Info records normal operational events.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.Printf("INFO: "+msg, args...)
}

// Error records failures that need operator attention.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.Printf("ERROR: "+msg, args...)
}

// Debug records detail useful when chasing a problem.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.Printf("DEBUG: "+msg, args...)
}
