package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFormat(t *testing.T) {
	assert.Equal(t, "pretty", resolveFormat("auto", true))
	assert.Equal(t, "json", resolveFormat("auto", false))
	assert.Equal(t, "pretty", resolveFormat("pretty", false))
	assert.Equal(t, "json", resolveFormat("json", true))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info", "json")
	log.Info().Str("course", "Economia").Msg("record added")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "Economia", line["course"])
	assert.Equal(t, "record added", line["message"])
}
