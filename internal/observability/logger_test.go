package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityQuiet, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestNewLogger(t *testing.T) {
	for _, jsonOutput := range []bool{false, true} {
		logger, err := NewLogger(VerbosityInfo, jsonOutput)
		require.NoError(t, err)
		require.NotNil(t, logger)

		assert.True(t, logger.Desugar().Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Desugar().Core().Enabled(zapcore.DebugLevel))
	}
}
