/*
Responsibilities
- Walk the document post-order and validate every element against the
  specification table
- Pick the matching rule candidate for each element
- Strip disallowed attributes, repair attribute values, remove or unwrap
  invalid elements
- Accumulate the script extensions surviving elements require

Every violation is locally recoverable. The decision callback is the only
way to keep an invalid node or attribute, which then becomes exempt.
*/
package sanitizer

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rohmanhakim/amp-sanitizer/internal/layout"
	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"github.com/rohmanhakim/amp-sanitizer/pkg/failure"
	"golang.org/x/net/html"
)

// mustacheScript matches the script form of an amp-mustache template.
const mustacheScript = `script[type="text/plain"][template="amp-mustache"]`

type HtmlSanitizer struct {
	table        *spec.Table
	param        SanitizeParam
	metadataSink metadata.MetadataSink

	regexps   map[string]*regexp.Regexp
	selectors map[string]cascadia.Sel

	// exemptions outlive a pass
	exemptNodes    map[*html.Node]struct{}
	exemptAttrs    map[*html.Node]map[string]struct{}
	replaceOffered map[*html.Node]struct{}

	// per pass state
	root         *html.Node
	openElements map[string]int
	uniqueSeen   map[string]map[string]struct{}
	reports      []Report
	visited      int
	removed      int
}

func NewHTMLSanitizer(table *spec.Table, param SanitizeParam, metadataSink metadata.MetadataSink) HtmlSanitizer {
	if param.ShouldSanitize == nil {
		param.ShouldSanitize = validation.AcceptAll
	}
	if metadataSink == nil {
		metadataSink = &metadata.NoopSink{}
	}
	return HtmlSanitizer{
		table:          table,
		param:          param,
		metadataSink:   metadataSink,
		regexps:        make(map[string]*regexp.Regexp),
		selectors:      make(map[string]cascadia.Sel),
		exemptNodes:    make(map[*html.Node]struct{}),
		exemptAttrs:    make(map[*html.Node]map[string]struct{}),
		replaceOffered: make(map[*html.Node]struct{}),
		openElements:   make(map[string]int),
		uniqueSeen:     make(map[string]map[string]struct{}),
	}
}

func (h *HtmlSanitizer) Sanitize(doc *html.Node) (SanitizedHTMLDoc, failure.ClassifiedError) {
	sanitizedHtmlDoc, err := h.sanitize(doc)
	if err != nil {
		var sanitizationError *SanitizationError
		errors.As(err, &sanitizationError)
		h.metadataSink.RecordError(
			time.Now(),
			"sanitizer",
			"HtmlSanitizer.Sanitize",
			mapSanitizationErrorToMetadataCause(*sanitizationError),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrTag, h.rootName()),
			},
		)
		return SanitizedHTMLDoc{}, sanitizationError
	}
	return sanitizedHtmlDoc, nil
}

func (h *HtmlSanitizer) sanitize(doc *html.Node) (SanitizedHTMLDoc, error) {
	if doc == nil {
		return SanitizedHTMLDoc{}, &SanitizationError{Cause: ErrCauseNilDocument}
	}
	root := findRoot(doc, h.rootName())
	if root == nil {
		return SanitizedHTMLDoc{}, &SanitizationError{
			Message: "no <" + h.rootName() + "> element",
			Cause:   ErrCauseMissingRoot,
		}
	}

	started := time.Now()
	h.beginPass(root)
	extensions := h.processChildren(root)

	if finalizer, ok := h.metadataSink.(metadata.PassFinalizer); ok {
		finalizer.RecordPassStats(h.visited, len(h.reports), h.removed, time.Since(started))
	}

	reports := append([]Report(nil), h.reports...)
	return NewSanitizedHTMLDoc(root, extensions, reports), nil
}

func (h *HtmlSanitizer) rootName() string {
	if h.param.UseDocumentElement {
		return "html"
	}
	return "body"
}

// findRoot returns doc itself when it is the requested element, otherwise
// the first matching descendant.
func findRoot(doc *html.Node, name string) *html.Node {
	if doc.Type == html.ElementNode && doc.Data == name {
		return doc
	}
	sel := goquery.NewDocumentFromNode(doc).Find(name)
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

func (h *HtmlSanitizer) beginPass(root *html.Node) {
	h.root = root
	h.openElements = make(map[string]int)
	h.uniqueSeen = make(map[string]map[string]struct{})
	h.reports = nil
	h.visited = 0
	h.removed = 0
	for n := root; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			h.openElements[n.Data]++
		}
	}
}

// processChildren walks the children of parent. The next sibling is taken
// before a child is processed since processing may unwrap or detach it.
func (h *HtmlSanitizer) processChildren(parent *html.Node) []string {
	var extensions []string
	for child := parent.FirstChild; child != nil; {
		next := child.NextSibling
		switch child.Type {
		case html.ElementNode:
			extensions = append(extensions, h.processElement(child)...)
		case html.CommentNode:
			if isProcessingInstruction(child) && !h.isExemptNode(child) {
				h.removeNode(child, validation.Error{
					Code:     validation.CodeDisallowedProcessingInstruction,
					Node:     child,
					NodeName: "#comment",
				})
			}
		}
		if next != nil && next.Parent != parent {
			// the remaining siblings went away with a cascading removal
			break
		}
		child = next
	}
	return extensions
}

func (h *HtmlSanitizer) processElement(el *html.Node) []string {
	name := el.Data
	h.visited++
	h.openElements[name]++
	defer func() { h.openElements[name]-- }()

	childExtensions := h.processChildren(el)
	if el.Parent == nil {
		// emptied and removed by a cascade from one of its children
		return nil
	}
	if h.isExemptNode(el) {
		return childExtensions
	}

	own := h.validateElement(el)
	if el.Parent == nil {
		if el.FirstChild != nil {
			// removed together with its subtree
			return nil
		}
		// unwrapped, the children live on in place of el
		return childExtensions
	}
	return append(childExtensions, own...)
}

// validateElement validates el itself. Its children are settled already.
// It returns the extensions el requires when it survives.
func (h *HtmlSanitizer) validateElement(el *html.Node) []string {
	base := validation.Error{Node: el, NodeName: el.Data}

	candidates, ok := h.table.Candidates(el.Data)
	if !ok {
		verr := base
		verr.Code = validation.CodeDisallowedTag
		h.removeOrReplace(el, verr)
		return nil
	}

	valid, failures := h.structuralCandidates(el, candidates)
	if len(valid) == 0 {
		h.rejectStructurally(el, candidates, failures)
		return nil
	}

	chosen, ok := SelectCandidate(el.Attr, valid)
	if !ok {
		verr := base
		verr.Code = validation.CodeDisallowedTag
		verr.SpecNames = specNames(valid)
		h.removeNode(el, verr)
		return nil
	}

	tag := chosen.Tag
	signature := ""
	if tag.Unique {
		signature = uniqueSignature(tag)
		if h.seenUnique(tag.TagName, signature) {
			verr := base
			verr.Code = validation.CodeDuplicateUniqueTag
			verr.SpecName = tag.Name()
			if h.removeNode(el, verr) {
				return nil
			}
			return h.finish(el, chosen, h.allowedAttrs(chosen), "")
		}
	}

	inTemplate := h.inMustacheTemplate(el)
	allowed := h.allowedAttrs(chosen)

	h.validateAttributes(el, chosen, allowed, inTemplate)

	if !h.validateMandatoryAttrs(el, chosen) {
		return h.finish(el, chosen, allowed, signature)
	}

	if verr := layout.Validate(tag, el, inTemplate); verr != nil {
		if h.removeNode(el, *verr) {
			return nil
		}
		return h.finish(el, chosen, allowed, signature)
	}

	if chosen.Cdata != nil && !inTemplate {
		if verr := h.validateCdata(el, tag, chosen.Cdata); verr != nil {
			if h.removeNode(el, *verr) {
				return nil
			}
		}
	}

	return h.finish(el, chosen, allowed, signature)
}

// finish records a surviving element and collects its extensions.
func (h *HtmlSanitizer) finish(el *html.Node, chosen spec.RuleCandidate, allowed spec.AttrList, signature string) []string {
	if el.Parent == nil {
		return nil
	}
	if signature != "" {
		h.markUnique(chosen.Tag.TagName, signature)
	}
	return collectExtensions(el, chosen.Tag, allowed)
}

// allowedAttrs is the tag specific list on top of the global list, plus
// the layout list for tags with layout capability.
func (h *HtmlSanitizer) allowedAttrs(c spec.RuleCandidate) spec.AttrList {
	allowed := append(spec.AttrList(nil), h.table.GlobalAttrs...)
	if c.Tag.Layout != nil {
		allowed = allowed.Merge(h.table.LayoutAttrs)
	}
	return allowed.Merge(c.Attrs)
}

// inMustacheTemplate reports whether el sits inside an amp-mustache
// template. The open element counter avoids the ancestor walk in the
// common case. It counts el itself, so a template is not inside itself.
func (h *HtmlSanitizer) inMustacheTemplate(el *html.Node) bool {
	templates := h.openElements["template"]
	if el.Data == "template" {
		templates--
	}
	if templates > 0 {
		return true
	}
	if h.openElements["script"] == 0 {
		return false
	}
	for p := el.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && h.matches(p, mustacheScript) {
			return true
		}
	}
	return false
}

func collectExtensions(el *html.Node, tag spec.TagSpec, allowed spec.AttrList) []string {
	extensions := append([]string(nil), tag.RequiresExtension...)
	for _, a := range el.Attr {
		if _, ok := bindTarget(a.Key); ok {
			extensions = append(extensions, "amp-bind")
			continue
		}
		if as, ok := allowed.Lookup(a.Key); ok {
			extensions = append(extensions, as.RequiresExtension...)
		}
	}
	return extensions
}

// isProcessingInstruction reports whether a comment is the bogus comment
// the HTML parser produces for <?...?>.
func isProcessingInstruction(n *html.Node) bool {
	return strings.HasPrefix(n.Data, "?")
}

func specNames(candidates []spec.RuleCandidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Tag.Name()
	}
	return names
}
