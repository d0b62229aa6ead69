package sanitizer

import (
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"golang.org/x/net/html"
)

type SanitizedHTMLDoc struct {
	contentNode *html.Node
	extensions  []string
	reports     []Report
}

// GetContentNode returns the validation root (html or body).
func (s *SanitizedHTMLDoc) GetContentNode() *html.Node {
	return s.contentNode
}

// RawExtensions returns the required script extensions as accumulated
// during the walk, duplicates included.
func (s *SanitizedHTMLDoc) RawExtensions() []string {
	return s.extensions
}

// RequiredExtensions returns the required script extensions without
// duplicates, in first seen order.
func (s *SanitizedHTMLDoc) RequiredExtensions() []string {
	seen := make(map[string]struct{}, len(s.extensions))
	out := make([]string, 0, len(s.extensions))
	for _, e := range s.extensions {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Reports returns every validation error raised during the pass together
// with the decision taken for it.
func (s *SanitizedHTMLDoc) Reports() []Report {
	return s.reports
}

// NewSanitizedHTMLDoc creates a SanitizedHTMLDoc for testing purposes.
// The fields remain private to maintain immutability.
func NewSanitizedHTMLDoc(contentNode *html.Node, extensions []string, reports []Report) SanitizedHTMLDoc {
	return SanitizedHTMLDoc{
		contentNode: contentNode,
		extensions:  extensions,
		reports:     reports,
	}
}

// Report pairs a validation error with whether it was sanitized.
type Report struct {
	Error     validation.Error `json:"error"`
	Sanitized bool             `json:"sanitized"`
}

// SanitizeParam holds configuration parameters for the sanitization process.
type SanitizeParam struct {
	// UseDocumentElement selects <html> as the validation root. When false
	// the root is <body>.
	UseDocumentElement bool
	// ShouldSanitize decides per error whether the fix is applied. Nil
	// accepts every error.
	ShouldSanitize validation.Decider
}

func DefaultSanitizeParam() SanitizeParam {
	return SanitizeParam{
		UseDocumentElement: true,
		ShouldSanitize:     validation.AcceptAll,
	}
}

// attrIssue is an attribute problem found during the scan and applied
// once the scan is over.
type attrIssue struct {
	name string
	err  validation.Error
	// fix rewrites the current attribute value. A nil fix removes the
	// attribute.
	fix func(current string) string
}
