package logger

// noOpLogger discards everything (for tests)
type noOpLogger struct{}

// NewNoOpLogger creates a logger that does nothing
func NewNoOpLogger() Logger {
	return noOpLogger{}
}

func (noOpLogger) Debug(msg string, fields ...Field) {}
func (noOpLogger) Info(msg string, fields ...Field)  {}
func (noOpLogger) Warn(msg string, fields ...Field)  {}
func (noOpLogger) Error(msg string, fields ...Field) {}

// Fatal still stops the caller, it just doesn't write anything
func (noOpLogger) Fatal(msg string, fields ...Field) {
	panic("fatal log message: " + msg)
}

func (n noOpLogger) With(fields ...Field) Logger { return n }
func (noOpLogger) Sync() error                   { return nil }
