// Package observability builds the zap logger shared by the build commands.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/meur/mhwdb/internal/config"
)

// NewLogger returns a logger writing to stderr, leaving stdout to the
// command's own status lines. The json format suits CI logs. The console
// format omits stack traces, since a failed build already reports the
// wrapped error chain.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	zapCfg, err := baseConfig(cfg.Format)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = level
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building %s logger: %w", cfg.Format, err)
	}
	return logger.Named("mhwdb"), nil
}

func baseConfig(format string) (zap.Config, error) {
	switch format {
	case "json":
		return zap.NewProductionConfig(), nil
	case "console":
		c := zap.NewDevelopmentConfig()
		c.DisableStacktrace = true
		return c, nil
	}
	return zap.Config{}, fmt.Errorf("unknown log format %q", format)
}
