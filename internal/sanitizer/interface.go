package sanitizer

import (
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"github.com/rohmanhakim/amp-sanitizer/pkg/failure"
	"golang.org/x/net/html"
)

// Sanitizer defines the interface for AMP tag and attribute sanitization.
type Sanitizer interface {
	// Sanitize validates the document in place and returns the validation
	// root, the required extensions and the validation reports, or a
	// ClassifiedError if the document has no root to validate.
	Sanitize(doc *html.Node) (SanitizedHTMLDoc, failure.ClassifiedError)
}

// InvalidNodeRemover is the mutation contract shared with other passes.
// Both methods consult the decision callback first and report whether the
// removal happened. A rejected error leaves the node or attribute exempt
// from later validation.
type InvalidNodeRemover interface {
	RemoveInvalidChild(node *html.Node, verr validation.Error) bool
	RemoveInvalidAttribute(element *html.Node, attrName string, verr validation.Error) bool
}

// Compile-time interface check
var (
	_ Sanitizer          = (*HtmlSanitizer)(nil)
	_ InvalidNodeRemover = (*HtmlSanitizer)(nil)
)
