package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logFilePath(dir string) string {
	return filepath.Join(dir, "gateway-"+time.Now().Format("2006-01-02")+".log")
}

func TestZapLoggerWritesExtraFields(t *testing.T) {
	dir := t.TempDir()

	logger := newZapLogger(&Config{FilePath: dir + "/", Encoding: "json", Level: "debug", Logger: "zap"})
	logger.Info(Gateway, Connect, "connection admitted", map[ExtraKey]any{
		ConnectionID: "c1",
		RoomID:       "channel:general",
	})

	raw, err := os.ReadFile(logFilePath(dir))
	require.NoError(t, err)

	line := string(raw)
	assert.Contains(t, line, `"Category":"Gateway"`)
	assert.Contains(t, line, `"SubCategory":"Connect"`)
	assert.Contains(t, line, `"ConnectionId":"c1"`)
	assert.Contains(t, line, `"RoomId":"channel:general"`)
}

func TestZeroLoggerWritesExtraFields(t *testing.T) {
	dir := t.TempDir()

	logger := newZeroLogger(&Config{FilePath: dir + "/", Encoding: "json", Level: "debug", Logger: "zerolog"})
	logger.Warn(Registry, Membership, "member removed", map[ExtraKey]any{
		RoomID:   "channel:general",
		RoomSize: 2,
	})

	raw, err := os.ReadFile(logFilePath(dir))
	require.NoError(t, err)

	line := string(raw)
	assert.Contains(t, line, `"Category":"Registry"`)
	assert.Contains(t, line, `"SubCategory":"Membership"`)
	assert.Contains(t, line, `"RoomId":"channel:general"`)
	assert.Contains(t, line, `"RoomSize":2`)
}
