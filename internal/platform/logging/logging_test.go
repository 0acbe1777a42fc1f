package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := New(Config{
		Level:    "debug",
		Dir:      tmpDir,
		Filename: "test.log",
	})

	assert.NoError(t, err)
	assert.NotNil(t, logger)

	err = logger.Close()
	assert.NoError(t, err)
}

func TestLogger_InfoWritesToFile(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := New(Config{
		Level:    "info",
		Dir:      tmpDir,
		Filename: "info.log",
	})
	require.NoError(t, err)
	defer logger.Close()

	testMsg := "test info message"
	logger.Info("%s", testMsg)

	time.Sleep(10 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tmpDir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), testMsg)
}

func TestLogger_FormatMode(t *testing.T) {
	tmpDir := t.TempDir()

	logger, err := New(Config{
		Level:    "info",
		Dir:      tmpDir,
		Filename: "fmt.log",
	})
	require.NoError(t, err)
	defer logger.Close()

	logger.InfoTag("TTS", "synthesized %d bytes", 1024)

	time.Sleep(10 * time.Millisecond)

	content, err := os.ReadFile(filepath.Join(tmpDir, "fmt.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "[TTS] synthesized 1024 bytes")
}

func TestFormatLog(t *testing.T) {
	assert.Equal(t, "[BOOT] ready", FormatLog("BOOT", "ready"))
	assert.Equal(t, "[HTTP] already tagged", FormatLog("TTS", "[HTTP] already tagged"))
	assert.Equal(t, "untagged", FormatLog("", "untagged"))
}
