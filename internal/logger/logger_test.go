package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learnpulse/internal/logger"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("WARNING"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" error "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("nonsense"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.WARN), logger.WithColors(false))

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown 1")
	assert.Contains(t, out, "WARN")
}

func TestTextFormat_PrefixAndSortedFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithColors(false), logger.WithClock(fixedNow))

	log.WithPrefix("metrics").WithFields(map[string]any{"b": 2, "a": 1}).Info("recomputed")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "2026-03-01 12:00:00.000 INFO "))
	assert.Contains(t, line, "[metrics]")
	assert.True(t, strings.HasSuffix(line, "recomputed a=1 b=2\n"), line)
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.JSONFormat), logger.WithClock(fixedNow))

	log.WithPrefix("api").WithField("student_id", "s1").Error("failed: %s", "boom")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "failed: boom", entry["msg"])
	assert.Equal(t, "api", entry["component"])
	assert.Equal(t, "s1", entry["student_id"])
	assert.Equal(t, "2026-03-01T12:00:00Z", entry["ts"])
}

func TestDerivedLoggersDoNotShareFields(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.WithOutput(&buf), logger.WithColors(false))
	child := base.WithField("k", "v")

	base.Info("base")
	assert.NotContains(t, buf.String(), "k=v")

	buf.Reset()
	child.Info("child")
	assert.Contains(t, buf.String(), "k=v")
}

func TestContextRoundTrip(t *testing.T) {
	log := logger.New(logger.WithPrefix("req"))
	ctx := logger.NewContext(context.Background(), log)

	assert.Same(t, log, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
