package sanitizer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
	"github.com/rohmanhakim/amp-sanitizer/internal/sanitizer"
	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// mockMetadataSink is a test double for metadata.MetadataSink
type mockMetadataSink struct {
	errors      []recordedError
	validations []recordedValidation
	passes      int
}

type recordedError struct {
	timestamp   time.Time
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
	attrs       []metadata.Attribute
}

type recordedValidation struct {
	code     string
	accepted bool
	attrs    []metadata.Attribute
}

func (m *mockMetadataSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errors = append(m.errors, recordedError{
		timestamp:   observedAt,
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
		attrs:       attrs,
	})
}

func (m *mockMetadataSink) RecordValidation(code string, accepted bool, attrs []metadata.Attribute) {
	m.validations = append(m.validations, recordedValidation{code: code, accepted: accepted, attrs: attrs})
}

func (m *mockMetadataSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}

func (m *mockMetadataSink) RecordPassStats(totalElements, totalErrors, totalRemoved int, duration time.Duration) {
	m.passes++
}

// parseHTMLForTest parses markup the way the document package does, with
// scripting disabled so noscript content is parsed as markup.
func parseHTMLForTest(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	require.NoError(t, err)
	return doc
}

// newDefaultSanitizerForTest builds a sanitizer over the default table.
func newDefaultSanitizerForTest(sink metadata.MetadataSink) sanitizer.HtmlSanitizer {
	return sanitizer.NewHTMLSanitizer(spec.DefaultTable(), sanitizer.DefaultSanitizeParam(), sink)
}

// newCustomTableForTest builds a small table with child and CDATA rules.
func newCustomTableForTest() *spec.Table {
	table := &spec.Table{}
	table.Add(
		spec.RuleCandidate{Tag: spec.TagSpec{TagName: "x-panel", ChildTags: &spec.ChildTags{FirstChildOneOf: []string{"h2"}}}},
		spec.RuleCandidate{Tag: spec.TagSpec{TagName: "x-config"}, Cdata: &spec.CdataSpec{MaxBytes: 8}},
		spec.RuleCandidate{Tag: spec.TagSpec{TagName: "x-boilerplate"}, Cdata: &spec.CdataSpec{CdataRegex: `body\{[^}]*\}`}},
		spec.RuleCandidate{Tag: spec.TagSpec{TagName: "h2"}},
		spec.RuleCandidate{Tag: spec.TagSpec{TagName: "p"}},
	)
	return table
}

// sanitizeBodyForTest sanitizes markup placed in the body and returns the
// rendered body content together with the result.
func sanitizeBodyForTest(t *testing.T, s *sanitizer.HtmlSanitizer, body string) (string, sanitizer.SanitizedHTMLDoc) {
	t.Helper()
	doc := parseHTMLForTest(t, "<!doctype html><html><head></head><body>"+body+"</body></html>")
	result, err := s.Sanitize(doc)
	require.Nil(t, err)
	return innerHTMLForTest(t, doc, "body"), result
}

// innerHTMLForTest renders the children of the first element matching
// selector.
func innerHTMLForTest(t *testing.T, doc *html.Node, selector string) string {
	t.Helper()
	sel := goquery.NewDocumentFromNode(doc).Find(selector).First()
	out, err := sel.Html()
	require.NoError(t, err)
	return out
}

// renderHtmlForTest serializes an html.Node to its HTML string representation.
func renderHtmlForTest(node *html.Node) string {
	if node == nil {
		return ""
	}
	var buf strings.Builder
	html.Render(&buf, node)
	return buf.String()
}

func codesForTest(reports []sanitizer.Report) []validation.Code {
	codes := make([]validation.Code, 0, len(reports))
	for _, r := range reports {
		codes = append(codes, r.Error.Code)
	}
	return codes
}
