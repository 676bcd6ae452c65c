package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/bot-kit/registration-service/internal/config"
)

func TestNewLoggerHonorsLevel(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "debug"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNewLoggerFallsBackToInfoOnBadLevel(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "chatty"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLoggerBuildsForBothEnvironments(t *testing.T) {
	for _, dev := range []bool{true, false} {
		logger, err := NewLogger(config.LoggerConfig{Level: "info", Development: dev})
		require.NoError(t, err)
		require.NotNil(t, logger)
	}
}
