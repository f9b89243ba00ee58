package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_WritesDebugToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)

	logger, err := NewLogger(dir, "test", now)
	require.NoError(t, err)

	logger.Debug("Seeding rooms", zap.Int("pupils", 12))
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "test_2026-03-14_09-26-53.log"))
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))

	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "Seeding rooms", entry["msg"])
	assert.Equal(t, float64(12), entry["pupils"])
	assert.Contains(t, entry, "timestamp")
}

func TestInitLogger_UsesEnvDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(LogDirEnv, dir)

	logger, err := InitLogger("prod")
	require.NoError(t, err)
	_ = logger.Sync()

	matches, err := filepath.Glob(filepath.Join(dir, "prod_*.log"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
