package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, toZapLevel(DebugLevel))
	assert.Equal(t, zapcore.WarnLevel, toZapLevel(WarnLevel))
	assert.Equal(t, zapcore.ErrorLevel, toZapLevel(ErrorLevel))
	assert.Equal(t, zapcore.InfoLevel, toZapLevel("verbose"))
}

func TestNamedToleratesNilParent(t *testing.T) {
	assert.NotNil(t, Named(nil, "timekeeper"))
	assert.NotNil(t, Named(Get(InfoLevel).SugaredLogger, "storage"))
}

func TestNewFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomodoro.log")
	log, err := NewFile(path, DebugLevel)
	require.NoError(t, err)
	log.Infow("countdown started", "remaining", 2700)
	log.Debugw("play ignored")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "countdown started")
	assert.Contains(t, string(data), "remaining")
	assert.Contains(t, string(data), "DEBUG")
}

func TestNewFileRejectsMissingDirectory(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing", "pomodoro.log"), InfoLevel)
	assert.Error(t, err)
}
