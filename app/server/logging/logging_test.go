package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	logger, err := Init(Options{Production: true, Level: "info", File: path})
	require.NoError(t, err)
	defer zap.ReplaceGlobals(zap.NewNop())

	zap.L().Info("hello from test", zap.String("k", "v"))
	zap.L().Debug("filtered out")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "hello from test")
	assert.NotContains(t, string(b), "filtered out")
}

func TestInitRejectsBadLevel(t *testing.T) {
	_, err := Init(Options{Level: "loud"})
	assert.Error(t, err)
}
