package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chosenoffset.com/elevator/internal/simulation"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		cfg     simulation.LoggingConfig
		debugOn bool
		infoOn  bool
	}{
		{"console debug", simulation.LoggingConfig{Level: "debug", Format: "console"}, true, true},
		{"json warn", simulation.LoggingConfig{Level: "warn", Format: "json"}, false, false},
		{"unknown level", simulation.LoggingConfig{Level: "chatty"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.debugOn, logger.Core().Enabled(zap.DebugLevel))
			assert.Equal(t, tt.infoOn, logger.Core().Enabled(zap.InfoLevel))
			assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
		})
	}
}
