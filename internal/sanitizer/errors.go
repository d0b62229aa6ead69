package sanitizer

import (
	"fmt"

	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
	"github.com/rohmanhakim/amp-sanitizer/pkg/failure"
)

type SanitizationErrorCause string

const (
	ErrCauseMissingRoot SanitizationErrorCause = "missing root"
	ErrCauseNilDocument SanitizationErrorCause = "nil document"
)

type SanitizationError struct {
	Message   string
	Retryable bool
	Cause     SanitizationErrorCause
}

func (e *SanitizationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sanitization error: %s: %s", e.Cause, e.Message)
	}
	return fmt.Sprintf("sanitization error: %s", e.Cause)
}

func (e *SanitizationError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapSanitizationErrorToMetadataCause maps sanitizer-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapSanitizationErrorToMetadataCause(err SanitizationError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseMissingRoot:
		return metadata.CauseContentInvalid
	case ErrCauseNilDocument:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
