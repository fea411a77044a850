package core

import (
	"fmt"
	"log"
	"strings"
)

// noopLogger satisfies Logger while discarding everything. It is the default
// until WithLogger installs a real sink.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// StdLogger adapts a *log.Logger to the Logger contract, rendering key/value
// pairs as key=value fields.
type StdLogger struct {
	out *log.Logger
}

// NewStdLogger wraps l; a nil l uses the process default logger.
func NewStdLogger(l *log.Logger) *StdLogger {
	if l == nil {
		l = log.Default()
	}
	return &StdLogger{out: l}
}

func (s *StdLogger) Debug(msg string, args ...any) { s.emit("debug", msg, args) }
func (s *StdLogger) Info(msg string, args ...any)  { s.emit("info", msg, args) }
func (s *StdLogger) Warn(msg string, args ...any)  { s.emit("warn", msg, args) }
func (s *StdLogger) Error(msg string, args ...any) { s.emit("error", msg, args) }

func (s *StdLogger) emit(level, msg string, args []any) {
	var b strings.Builder
	fmt.Fprintf(&b, "level=%s msg=%q", level, msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 == 1 {
		fmt.Fprintf(&b, " arg=%v", args[len(args)-1])
	}
	s.out.Println(b.String())
}
