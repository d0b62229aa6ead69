package document

import (
	"fmt"

	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
	"github.com/rohmanhakim/amp-sanitizer/pkg/failure"
)

type DocumentErrorCause string

const (
	ErrCauseEmptyInput   DocumentErrorCause = "empty input"
	ErrCauseParseFailed  DocumentErrorCause = "parse failed"
	ErrCauseRenderFailed DocumentErrorCause = "render failed"
)

type DocumentError struct {
	Message   string
	Retryable bool
	Cause     DocumentErrorCause
}

func (e *DocumentError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("document error: %s", e.Cause)
	}
	return fmt.Sprintf("document error: %s: %s", e.Cause, e.Message)
}

func (e *DocumentError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapDocumentErrorToMetadataCause maps document-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapDocumentErrorToMetadataCause(err *DocumentError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseEmptyInput, ErrCauseParseFailed:
		return metadata.CauseContentInvalid
	case ErrCauseRenderFailed:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
