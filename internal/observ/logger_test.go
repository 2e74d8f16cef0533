package observ

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("development", "not-a-level")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(0))
	require.False(t, logger.Core().Enabled(-1))
}

func TestNewLoggerWithSinkWritesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nuga.log")
	logger, err := NewLoggerWithSink("production", "info", FileSink{Path: path})
	require.NoError(t, err)

	logger.Info("table saved")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "table saved"))
}
