package i

// Logger is the logging surface components depend on.
type Logger interface {
	Info(msg string, keyvals ...any)
	Warning(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}
