package zap

import (
	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/logger/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func level(cfg config.Configuration) zapcore.Level {
	switch cfg.Level {
	case config.DEBUG_LEVEL:
		return zapcore.DebugLevel
	case config.WARN_LEVEL:
		return zapcore.WarnLevel
	case config.ERROR_LEVEL:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a console logger on stderr with the configured level and time layout.
func New(cfg config.Configuration) (*zap.Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level(cfg)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}
