package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Below warn level it uses the more
// verbose development config. When file is non-empty all output goes
// there instead of stderr, which keeps the TUI's screen clean.
func New(level zapcore.Level, file string) (*zap.Logger, error) {
	var cfg zap.Config

	// production mode
	if level >= zapcore.WarnLevel {
		cfg = zap.NewProductionConfig()
	} else {
		// development mode, more detailed logging
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if file != "" {
		cfg.OutputPaths = []string{file}
		cfg.ErrorOutputPaths = []string{file}
	}

	return cfg.Build()
}
