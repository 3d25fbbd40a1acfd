package lab

import "log"

// Logger is the logging interface used by the lab.
type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debugf(format string, v ...any) {}
func (NopLogger) Infof(format string, v ...any)  {}
func (NopLogger) Warnf(format string, v ...any)  {}
func (NopLogger) Errorf(format string, v ...any) {}

// StdLogger writes leveled lines to a standard library logger.
type StdLogger struct {
	out   *log.Logger
	debug bool
}

// NewStdLogger wraps out. Debug lines are written only when debug is set.
// A nil out uses the standard logger.
func NewStdLogger(out *log.Logger, debug bool) *StdLogger {
	if out == nil {
		out = log.Default()
	}
	return &StdLogger{out: out, debug: debug}
}

func (l *StdLogger) Debugf(format string, v ...any) {
	if l.debug {
		l.out.Printf("[DEBUG] "+format, v...)
	}
}

func (l *StdLogger) Infof(format string, v ...any) {
	l.out.Printf("[INFO] "+format, v...)
}

func (l *StdLogger) Warnf(format string, v ...any) {
	l.out.Printf("[WARN] "+format, v...)
}

func (l *StdLogger) Errorf(format string, v ...any) {
	l.out.Printf("[ERROR] "+format, v...)
}
