package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bffmvp/internal/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "info", Format: "json", Location: "UTC"}, &buf)
	require.NoError(t, err)

	Component(log, "routeview").WithField("event", "fetch_settled").Info("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "routeview", entry["component"])
	assert.Equal(t, "fetch_settled", entry["event"])
	assert.Equal(t, "info", entry["level"])
	assert.NotEmpty(t, entry["ts"])
	assert.True(t, strings.HasSuffix(entry["ts"].(string), "Z"))
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, nil)
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Format: "xml"}, nil)
	assert.Error(t, err)

	_, err = New(config.LogConfig{Level: "info", Location: "Mars/Olympus"}, nil)
	assert.Error(t, err)
}
