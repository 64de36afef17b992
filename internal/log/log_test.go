package log

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/J-mazz/URTledger/internal/config"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
	}
	for _, tc := range cases {
		level, err := ParseLevel(tc.raw)
		require.NoError(t, err, "level %q", tc.raw)
		require.Equal(t, tc.want, level)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, _, err := Setup(config.LoggingConfig{Level: "loud"})
	require.Error(t, err)
}

func TestSetupWritesToRotatingFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "logs", "urtledger.log")
	logger, closer, err := Setup(config.LoggingConfig{Level: "info", File: file})
	require.NoError(t, err)

	logger.Info("ledger opened", "path", "test.db")
	require.NoError(t, closer())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), "ledger opened")
	require.Contains(t, string(data), "path=test.db")
}

func TestSetupDebugLevelEnablesDebugRecords(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "urtledger.log")
	logger, closer, err := Setup(config.LoggingConfig{Level: "debug", File: file})
	require.NoError(t, err)

	logger.Debug("seeding defaults")
	require.NoError(t, closer())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), "seeding defaults")
}

func TestNewRotatingWriterRequiresFile(t *testing.T) {
	t.Parallel()

	_, err := NewRotatingWriter(RotationConfig{})
	require.Error(t, err)
}

func TestNewRotatingWriterAppliesDefaults(t *testing.T) {
	t.Parallel()

	writer, err := NewRotatingWriter(RotationConfig{File: filepath.Join(t.TempDir(), "urtledger.log")})
	require.NoError(t, err)
	defer func() { _ = writer.Close() }()

	require.Equal(t, 10, writer.MaxSize)
	require.Equal(t, 5, writer.MaxBackups)
}
