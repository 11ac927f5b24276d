package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every line of the server logger.
const ServiceName = "lingodesk"

// NewLogger creates a zap logger for the given environment.
// prod uses JSON output, local/dev use colored console output.
// levelOverride (if non-empty) overrides the log level: debug, info, warn, error.
func NewLogger(env string, levelOverride ...string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
	case "local", "dev", "docker":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}

	if len(levelOverride) > 0 && levelOverride[0] != "" {
		level, err := parseLevel(levelOverride[0])
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := cfg.Build(
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", ServiceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l, nil
}

// NewCLILogger creates a console logger on stderr for command-line use.
// Only warnings and errors are printed unless verbose is set.
func NewCLILogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = ""
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build cli logger: %w", err)
	}
	return l, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
