package sanitizer

import "regexp"

// fullMatch reports whether the whole value matches pattern. Patterns that
// fail to compile never match.
func (h *HtmlSanitizer) fullMatch(pattern, value string, casei bool) bool {
	expr := "^(?:" + pattern + ")$"
	if casei {
		expr = "(?i)" + expr
	}
	re := h.compile(expr)
	return re != nil && re.MatchString(value)
}

// contains reports whether pattern matches anywhere in value.
func (h *HtmlSanitizer) contains(pattern, value string) bool {
	re := h.compile(pattern)
	return re != nil && re.MatchString(value)
}

func (h *HtmlSanitizer) compile(expr string) *regexp.Regexp {
	if re, ok := h.regexps[expr]; ok {
		return re
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		re = nil
	}
	h.regexps[expr] = re
	return re
}
