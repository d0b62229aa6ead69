package failure

type Severity int

// Severity tells a caller whether a pipeline stage can carry on after the
// error. Validation findings never surface as a ClassifiedError, only stage
// failures do.
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

func (s Severity) String() string {
	switch s {
	case SeverityRecoverable:
		return "recoverable"
	default:
		return "fatal"
	}
}

type ClassifiedError interface {
	error
	Severity() Severity
}
