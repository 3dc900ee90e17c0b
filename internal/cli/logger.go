package cli

import "go.uber.org/zap"

// newLogger builds the zap logger for long-running commands. Verbose
// enables debug level; quiet drops everything.
func newLogger(globals *Globals) *zap.Logger {
	if globals.Quiet {
		return zap.NewNop()
	}
	cfg := zap.NewProductionConfig()
	if globals.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// newDebugLogger builds the sugared logger behind Globals.Debug, or nil
// when verbose mode is off.
func newDebugLogger(verbose bool) *zap.SugaredLogger {
	if !verbose {
		return nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	logger, err := cfg.Build()
	if err != nil {
		return nil
	}
	return logger.Sugar()
}

// Debug logs a formatted debug message when verbose mode is on.
func (g *Globals) Debug(format string, args ...interface{}) {
	if g == nil || g.debug == nil {
		return
	}
	g.debug.Debugf(format, args...)
}
