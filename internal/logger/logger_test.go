package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", "json")

	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	l.Warn().Str("room", "r1").Msg("[Join] room is full")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "r1", line["room"])
	assert.Equal(t, "[Join] room is full", line["message"])
	assert.Contains(t, line, "time")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "debug", "console")

	l.Debug().Str("conn", "abc").Msg("[dispatch] request")
	out := buf.String()
	assert.Contains(t, out, "[dispatch] request")
	assert.Contains(t, out, "conn=")
	assert.NotContains(t, out, "{")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("chatty"))
}
