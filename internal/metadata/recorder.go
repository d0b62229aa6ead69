package metadata

import (
	"time"

	"go.uber.org/zap"
)

/*
Metadata Collected
- Validation errors and whether each was sanitized
- Pass statistics (elements visited, errors, removals)
- Written artifacts

Logging Goals
- Debuggable sanitization decisions
- Post-run auditability

Structured logging is preferred.

Allowed:
- Primitive values
- Tag and attribute names
- Error codes
- Hashes
- Durations

Metadata is write-only.
No component may read metadata to influence sanitization decisions.
*/

/*
Recorder captures structured sanitizer events on a zap logger.
It must not:
- perform I/O decisions
- affect control flow
Ordering guarantees:
- Events are recorded synchronously in the order they are received.
*/
type Recorder struct {
	logger *zap.Logger
}

// NewRecorder returns a Recorder that writes to logger.
// A nil logger records nothing.
func NewRecorder(logger *zap.Logger) Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Recorder{
		logger: logger,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	record := ErrorRecord{
		packageName: packageName,
		action:      action,
		cause:       cause,
		errorString: errorString,
		observedAt:  observedAt,
		attrs:       attrs,
	}
	fields := []zap.Field{
		zap.Time(string(AttrTime), record.observedAt),
		zap.String("package", record.packageName),
		zap.String("action", record.action),
		zap.Stringer("cause", record.cause),
	}
	r.logger.Error(record.errorString, append(fields, toFields(record.attrs)...)...)
}

// RecordValidation logs one validation error together with the decision
// taken for it. Rejected errors are logged at warn level since they leave
// the document invalid.
func (r *Recorder) RecordValidation(code string, accepted bool, attrs []Attribute) {
	event := ValidationEvent{code: code, accepted: accepted, attrs: attrs}
	fields := append([]zap.Field{
		zap.String("code", event.code),
		zap.Bool("sanitized", event.accepted),
	}, toFields(event.attrs)...)
	if event.accepted {
		r.logger.Debug("validation error sanitized", fields...)
		return
	}
	r.logger.Warn("validation error kept", fields...)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	record := ArtifactRecord{paths: path}
	fields := append([]zap.Field{
		zap.String("kind", string(kind)),
		zap.String(string(AttrWritePath), record.paths),
	}, toFields(attrs)...)
	r.logger.Info("artifact written", fields...)
}

/*
RecordPassStats records a terminal, derived summary of a sanitization pass.

Contract:
  - MUST be called exactly once per pass, after the walk finished.
  - The provided counts MUST be derived from sanitizer state,
    not accumulated incrementally via the recorder.
  - Recorded stats MUST NOT influence control flow.
*/
func (r *Recorder) RecordPassStats(
	totalElements int,
	totalErrors int,
	totalRemoved int,
	duration time.Duration,
) {
	stats := passStats{
		totalElements: totalElements,
		totalErrors:   totalErrors,
		totalRemoved:  totalRemoved,
		durationMs:    duration.Milliseconds(),
	}
	r.logger.Info("sanitization pass finished",
		zap.Int("elements", stats.totalElements),
		zap.Int("errors", stats.totalErrors),
		zap.Int("removed", stats.totalRemoved),
		zap.Int64("duration_ms", stats.durationMs),
	)
}

func toFields(attrs []Attribute) []zap.Field {
	fields := make([]zap.Field, 0, len(attrs))
	for _, a := range attrs {
		fields = append(fields, zap.String(string(a.Key), a.Value))
	}
	return fields
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordValidation(code string, accepted bool, attrs []Attribute)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

type PassFinalizer interface {
	RecordPassStats(
		totalElements int,
		totalErrors int,
		totalRemoved int,
		duration time.Duration,
	)
}

// NoopSink implements MetadataSink but does nothing.
// Callers (or tests) decide whether to inject Recorder or NoopSink.

type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordValidation(code string, accepted bool, attrs []Attribute) {}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

var (
	_ MetadataSink  = (*Recorder)(nil)
	_ PassFinalizer = (*Recorder)(nil)
	_ MetadataSink  = (*NoopSink)(nil)
)
