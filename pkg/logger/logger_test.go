package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(file, "info")
	require.NoError(t, err)

	log.Info("CreateBooking: date=%s, time=%s", "2025-03-03", "09:00")
	log.Debug("hidden")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CreateBooking: date=2025-03-03, time=09:00")
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}
