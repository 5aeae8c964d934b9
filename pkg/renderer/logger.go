package renderer

// NopLogger implements core.Logger by discarding everything
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
