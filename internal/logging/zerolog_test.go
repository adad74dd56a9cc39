package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestZerologLogger_WritesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, LevelDebug, false)

	log.Info(context.Background(), "request", "method", "GET", "status", 200)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "request", lines[0]["message"])
	assert.Equal(t, "GET", lines[0]["method"])
	assert.EqualValues(t, 200, lines[0]["status"])
}

func TestZerologLogger_LevelFilterAndWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, LevelWarn, false).With("component", "devserver")
	ctx := context.Background()

	log.Debug(ctx, "nope")
	log.Info(ctx, "nope")
	log.Error(ctx, "boom", "dangling")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "error", lines[0]["level"])
	assert.Equal(t, "devserver", lines[0]["component"])
	assert.Equal(t, "dangling", lines[0]["!BADKEY"])
}
