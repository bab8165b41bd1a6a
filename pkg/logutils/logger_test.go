package logutils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tempbox.log")

	logger, closer, err := New("info", path, FormatJSON)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("k", "v").Msg("visible")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 1, "debug is below the configured level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "v", entry["k"])
	assert.Contains(t, entry, "time")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", "", FormatJSON)
	assert.Error(t, err)
}

func TestNew_InvalidFormat(t *testing.T) {
	_, _, err := New("info", filepath.Join(t.TempDir(), "x.log"), "xml")
	assert.Error(t, err)
}

func TestWrapFormat(t *testing.T) {
	var buf bytes.Buffer

	w, err := wrapFormat(&buf, FormatAuto, false)
	require.NoError(t, err)
	assert.Same(t, &buf, w, "auto off a terminal stays json")

	w, err = wrapFormat(&buf, FormatAuto, true)
	require.NoError(t, err)
	assert.IsType(t, zerolog.ConsoleWriter{}, w)

	w, err = wrapFormat(&buf, FormatConsole, false)
	require.NoError(t, err)
	assert.IsType(t, zerolog.ConsoleWriter{}, w)
}
