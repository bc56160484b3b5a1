package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSON(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, initWriter(Config{}, &bytes.Buffer{})) })

	var buf bytes.Buffer
	require.NoError(t, initWriter(Config{Output: "json", Debug: true}, &buf))

	ctx := WithContext(context.Background(), slogx.String("module", "noderewards"))
	ErrorContext(ctx, "failed to claim", errors.Wrap(errs.NotOwner, "node 1"), slogx.Duration("took", 1500*time.Millisecond))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line[LevelKey])
	assert.Equal(t, "noderewards", line["module"])
	assert.Equal(t, "node 1: Not Owner", line[ErrorKey])
	assert.EqualValues(t, 1500, line["took"])
	assert.Contains(t, line[ErrorVerboseKey], "Not Owner")
	assert.NotEmpty(t, line[ErrorStackTraceKey])
}

func TestInitLevel(t *testing.T) {
	t.Cleanup(func() { require.NoError(t, initWriter(Config{}, &bytes.Buffer{})) })

	var buf bytes.Buffer
	require.NoError(t, initWriter(Config{Output: "text"}, &buf))
	DebugContext(context.Background(), "hidden")
	assert.Empty(t, buf.String())
	InfoContext(context.Background(), "shown")
	assert.Contains(t, buf.String(), "msg=shown")

	require.ErrorIs(t, initWriter(Config{Output: "xml"}, &buf), errs.InvalidArgument)
}

func TestLevelAttrReplacer(t *testing.T) {
	testCases := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelInfo, "INFO"},
		{LevelCritical, "CRITICAL"},
		{LevelPanic, "PANIC"},
		{LevelFatal, "FATAL"},
		{LevelFatal + 1, "FATAL+1"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			attr := levelAttrReplacer(nil, slog.Any(slog.LevelKey, tc.level))
			assert.Equal(t, tc.expected, attr.Value.String())
		})
	}
}
