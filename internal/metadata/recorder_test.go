package metadata_test

import (
	"testing"
	"time"

	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedRecorder() (metadata.Recorder, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return metadata.NewRecorder(zap.New(core)), logs
}

func TestRecorder_RecordValidation(t *testing.T) {
	recorder, logs := newObservedRecorder()

	recorder.RecordValidation("DISALLOWED_ATTR", true, []metadata.Attribute{
		metadata.NewAttr(metadata.AttrTag, "div"),
		metadata.NewAttr(metadata.AttrAttribute, "onclick"),
	})
	recorder.RecordValidation("DISALLOWED_TAG", false, nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "DISALLOWED_ATTR", ctx["code"])
	assert.Equal(t, true, ctx["sanitized"])
	assert.Equal(t, "div", ctx["tag"])
	assert.Equal(t, "onclick", ctx["attribute"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, false, entries[1].ContextMap()["sanitized"])
}

func TestRecorder_RecordError(t *testing.T) {
	recorder, logs := newObservedRecorder()

	recorder.RecordError(time.Now(), "sanitizer", "Sanitize", metadata.CauseContentInvalid, "missing root", nil)

	entries := logs.FilterMessage("missing root").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "sanitizer", ctx["package"])
	assert.Equal(t, "content_invalid", ctx["cause"])
}

func TestRecorder_RecordPassStats(t *testing.T) {
	recorder, logs := newObservedRecorder()

	recorder.RecordPassStats(12, 3, 2, 1500*time.Millisecond)

	entries := logs.FilterMessage("sanitization pass finished").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.EqualValues(t, 12, ctx["elements"])
	assert.EqualValues(t, 3, ctx["errors"])
	assert.EqualValues(t, 2, ctx["removed"])
	assert.EqualValues(t, 1500, ctx["duration_ms"])
}

func TestRecorder_RecordArtifact(t *testing.T) {
	recorder, logs := newObservedRecorder()

	recorder.RecordArtifact(metadata.ArtifactHTML, "/tmp/out/abc.html", nil)

	entries := logs.FilterMessage("artifact written").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/tmp/out/abc.html", entries[0].ContextMap()["write_path"])
}

func TestNewRecorder_NilLogger(t *testing.T) {
	recorder := metadata.NewRecorder(nil)
	assert.NotPanics(t, func() {
		recorder.RecordValidation("DISALLOWED_TAG", true, nil)
	})
}
