package document_test

import (
	"time"

	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
)

type recordedError struct {
	action string
	cause  metadata.ErrorCause
	attrs  []metadata.Attribute
}

// errorSink records stage errors and ignores everything else.
type errorSink struct {
	metadata.NoopSink
	errors []recordedError
}

func (s *errorSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	s.errors = append(s.errors, recordedError{action: action, cause: cause, attrs: attrs})
}
