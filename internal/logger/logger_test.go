package logger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/event-engine/php-code-generator-cartridge-event-engine/internal/logger"
)

func TestNewLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg      logger.Config
		debugLog bool
	}{
		"human": {cfg: logger.Config{Format: logger.FormatHuman}},
		"json":  {cfg: logger.Config{Format: logger.FormatJSON}},
		"debug": {cfg: logger.Config{Format: logger.FormatHuman, Debug: true}, debugLog: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			log, err := logger.New(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.debugLog, log.Core().Enabled(zap.DebugLevel))
			assert.True(t, log.Core().Enabled(zap.InfoLevel))
		})
	}
}

func TestNewFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "eecodegen.log")

	log, err := logger.New(logger.Config{Format: logger.FormatJSON, File: path})
	require.NoError(t, err)

	log.Info("generated", zap.String("file", "Order.php"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "generated", entry["msg"])
	assert.Equal(t, "Order.php", entry["file"])
}
