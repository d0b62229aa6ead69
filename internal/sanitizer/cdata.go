package sanitizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"golang.org/x/net/html"
)

// maxJSONDepth is the deepest array or object nesting accepted.
const maxJSONDepth = 512

// validateCdata checks the text content of el. Checks run in order: size,
// denylist, mandatory pattern, then JSON syntax.
func (h *HtmlSanitizer) validateCdata(el *html.Node, tag spec.TagSpec, cdata *spec.CdataSpec) *validation.Error {
	text := goquery.NewDocumentFromNode(el).Text()
	fail := func(code validation.Code, issue string) *validation.Error {
		return &validation.Error{Code: code, Node: el, NodeName: el.Data, SpecName: tag.Name(), CdataIssue: issue}
	}

	if cdata.MaxBytes > 0 && len(text) > cdata.MaxBytes {
		return fail(validation.CodeCdataTooLong, fmt.Sprintf("%d bytes, limit is %d bytes", len(text), cdata.MaxBytes))
	}
	for _, d := range cdata.DisallowedRegex {
		if h.contains(d.Regex, text) {
			return fail(validation.CodeCdataViolatesDenylist, d.ErrorMessage)
		}
	}
	if cdata.CdataRegex != "" && !h.fullMatch(cdata.CdataRegex, text, false) {
		return fail(validation.CodeMandatoryCdataMissingOrIncorrect, "")
	}
	if cdata.JSON {
		if code, issue, ok := checkJSON(text); !ok {
			return fail(code, issue)
		}
	}
	return nil
}

// checkJSON maps JSON problems onto their validation codes.
func checkJSON(text string) (validation.Code, string, bool) {
	if strings.TrimSpace(text) == "" {
		return validation.CodeJSONErrorEmpty, "empty document", false
	}
	if !utf8.ValidString(text) {
		return validation.CodeJSONErrorUTF8, "malformed UTF-8 characters", false
	}

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) && syntaxErr.Offset > 0 && int(syntaxErr.Offset) <= len(text) {
			if c := text[syntaxErr.Offset-1]; c < 0x20 {
				return validation.CodeJSONErrorCtrlChar, "unexpected control character", false
			}
		}
		return validation.CodeJSONErrorSyntax, err.Error(), false
	}

	if jsonDepth(text) > maxJSONDepth {
		return validation.CodeJSONErrorDepth, fmt.Sprintf("maximum nesting depth of %d exceeded", maxJSONDepth), false
	}
	return "", "", true
}

// jsonDepth returns the deepest array or object nesting of a valid JSON
// document.
func jsonDepth(text string) int {
	depth, deepest := 0, 0
	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > deepest {
				deepest = depth
			}
		case '}', ']':
			depth--
		}
	}
	return deepest
}
