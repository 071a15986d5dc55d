package zap

import (
	"testing"
	"time"

	"github.com/lintang-b-s/hybrid-kl-partitioner/pkg/logger/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewHonorsLevel(t *testing.T) {
	testCases := []struct {
		name  string
		level int
		want  zapcore.Level
	}{
		{name: "debug", level: config.DEBUG_LEVEL, want: zapcore.DebugLevel},
		{name: "info", level: config.INFO_LEVEL, want: zapcore.InfoLevel},
		{name: "warn", level: config.WARN_LEVEL, want: zapcore.WarnLevel},
		{name: "error", level: config.ERROR_LEVEL, want: zapcore.ErrorLevel},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(config.Configuration{Level: tt.level, TimeFormat: time.RFC3339})
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}
