package widget

// Logger is the subset of the host's logger the widget runtime needs.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// nopLogger discards everything; the default when no logger is wired.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
