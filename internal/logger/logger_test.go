package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestInitializeWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "info", "json")
	t.Cleanup(func() { Initialize("info", "text") })

	Debug("hidden")
	Info("rental created", "code", "LOC0001")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rental created", entry["msg"])
	assert.Equal(t, "LOC0001", entry["code"])
}

func TestInitializeWithWriter_Tint(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter(&buf, "debug", "tint")
	t.Cleanup(func() { Initialize("info", "text") })

	DatabaseResult("DeleteRental", 0, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "Database call failed")
	assert.Contains(t, out, "boom")
}
