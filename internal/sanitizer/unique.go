package sanitizer

import (
	"encoding/json"

	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/pkg/hashutil"
)

// uniqueSignature identifies a tag spec. Elements matching the same spec
// share the signature.
func uniqueSignature(tag spec.TagSpec) string {
	serialized, err := json.Marshal(tag)
	if err != nil {
		return tag.TagName + "|" + tag.Name()
	}
	return hashutil.Signature(serialized)
}

func (h *HtmlSanitizer) seenUnique(tagName, signature string) bool {
	_, ok := h.uniqueSeen[tagName][signature]
	return ok
}

func (h *HtmlSanitizer) markUnique(tagName, signature string) {
	set, ok := h.uniqueSeen[tagName]
	if !ok {
		set = make(map[string]struct{})
		h.uniqueSeen[tagName] = set
	}
	set[signature] = struct{}{}
}
