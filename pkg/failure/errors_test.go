package failure_test

import (
	"testing"

	"github.com/rohmanhakim/amp-sanitizer/pkg/failure"
	"github.com/stretchr/testify/assert"
)

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "fatal", failure.SeverityFatal.String())
	assert.Equal(t, "recoverable", failure.SeverityRecoverable.String())
	assert.Equal(t, "fatal", failure.Severity(42).String())
}
