package metadata

import (
	"time"
)

type ValidationEvent struct {
	code     string
	accepted bool
	attrs    []Attribute
}

/*
passStats
  - Represents a terminal, derived summary of one sanitization pass
  - Contains only aggregate counts and durations
  - Is computed by the sanitizer after the walk finishes
  - Is recorded exactly once per pass
  - Must not influence validation or mutation decisions
*/
type passStats struct {
	totalElements int
	totalErrors   int
	totalRemoved  int
	durationMs    int64
}

type ArtifactRecord struct {
	paths string
}

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, metrics, reporting).

	Rules:
	 - ErrorCause is for observability only.
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.
	Non-goals:
	 - ErrorCause does not encode severity.
	 - ErrorCause does not imply that a document was left unsanitized.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.
  - Used as a safe fallback.

# CauseContentInvalid

Meaning:
  - Input was read but could not be processed meaningfully.

Examples:
  - Document without an html or body element
  - Unreadable input file

# CauseStorageFailure

Meaning:
  - Failure while persisting sanitized artifacts.

Examples:
  - Write permission errors
  - Filesystem I/O failures

# CauseInvariantViolation

Meaning:
  - A system-level invariant was violated.

Examples:
  - Nil document handed to the sanitizer
  - Rule table without the requested root element
*/
const (
	CauseUnknown ErrorCause = iota
	CauseContentInvalid
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ErrorRecord struct {
	packageName string
	action      string
	cause       ErrorCause
	errorString string
	observedAt  time.Time
	attrs       []Attribute
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrTime      AttributeKey = "time"
	AttrPath      AttributeKey = "path"
	AttrField     AttributeKey = "field"
	AttrWritePath AttributeKey = "write_path"
	AttrTag       AttributeKey = "tag"
	AttrAttribute AttributeKey = "attribute"
	AttrSpecName  AttributeKey = "spec_name"
	AttrNodePath  AttributeKey = "node_path"
)

type ArtifactKind string

const (
	ArtifactHTML ArtifactKind = "html"
)
