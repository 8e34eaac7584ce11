package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"aquaflow/internal/config"
)

const FormatConsole = "console"

// New builds the process logger. JSON production output is the default;
// "console" switches to the human-readable development encoder. Unknown
// levels fall back to info.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Format == FormatConsole {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.Sampling = nil
	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.InitialFields = map[string]interface{}{"service": "aquaflow"}

	return zcfg.Build()
}
