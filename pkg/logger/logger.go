package logger

import (
	"time"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/logger/config"
	myZap "github.com/lintang-b-s/hybrid-kl-partitioner/pkg/logger/zap"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// New reads LOG_LEVEL and LOG_TIME_FORMAT from the global viper instance.
func New() (*zap.Logger, error) {
	viper.SetDefault("LOG_LEVEL", config.INFO_LEVEL)
	viper.SetDefault("LOG_TIME_FORMAT", time.RFC3339Nano)

	cfg := config.Configuration{
		Level:      viper.GetInt("LOG_LEVEL"),
		TimeFormat: viper.GetString("LOG_TIME_FORMAT"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	log, err := myZap.New(cfg)

	if err != nil {
		return nil, err
	}

	return log, nil
}
