package core

// Logger is the logging sink used by the renderer and the scene loaders
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything; tests and library callers use it to keep output quiet
type NopLogger struct{}

// Printf implements Logger
func (NopLogger) Printf(format string, args ...interface{}) {}
