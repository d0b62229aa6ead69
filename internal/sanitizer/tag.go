package sanitizer

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"golang.org/x/net/html"
)

// structuralCandidates splits candidates into those whose placement and
// child constraints hold for el and the errors of the others, in order.
func (h *HtmlSanitizer) structuralCandidates(el *html.Node, candidates []spec.RuleCandidate) ([]spec.RuleCandidate, []validation.Error) {
	var valid []spec.RuleCandidate
	var failures []validation.Error
	for _, c := range candidates {
		if verr := h.validateTagSpec(el, c.Tag); verr != nil {
			failures = append(failures, *verr)
			continue
		}
		valid = append(valid, c)
	}
	return valid, failures
}

// rejectStructurally removes or unwraps an element no candidate accepts.
func (h *HtmlSanitizer) rejectStructurally(el *html.Node, candidates []spec.RuleCandidate, failures []validation.Error) {
	if len(failures) == 1 {
		h.removeOrReplace(el, failures[0])
		return
	}
	if allSameReason(failures) {
		h.removeOrReplace(el, failures[0].WithSpecNames(specNames(candidates)))
		return
	}

	// offer each failure in turn until the caller accepts one
	for _, verr := range failures {
		if h.decide(verr, removalAction(el)) {
			h.applyRemoveOrReplace(el)
			return
		}
	}
	h.markExemptNode(el)
}

func removalAction(el *html.Node) validation.Action {
	if alwaysRemove[tagAtom(el)] || el.FirstChild == nil {
		return validation.ActionRemoveNode
	}
	return validation.ActionReplaceWithChildren
}

// applyRemoveOrReplace mutates without consulting the callback again.
func (h *HtmlSanitizer) applyRemoveOrReplace(el *html.Node) {
	if el == h.root || el.Parent == nil {
		return
	}
	if removalAction(el) == validation.ActionRemoveNode {
		h.detach(el)
		return
	}
	h.replaceOffered[el] = struct{}{}
	parent := el.Parent
	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		el.RemoveChild(c)
		parent.InsertBefore(c, el)
		c = next
	}
	parent.RemoveChild(el)
	h.removed++
}

func allSameReason(failures []validation.Error) bool {
	for _, f := range failures[1:] {
		if !failures[0].SameReason(f) {
			return false
		}
	}
	return true
}

// validateTagSpec checks placement and children of el against tag.
func (h *HtmlSanitizer) validateTagSpec(el *html.Node, tag spec.TagSpec) *validation.Error {
	fail := func(code validation.Code) *validation.Error {
		return &validation.Error{Code: code, Node: el, NodeName: el.Data, SpecName: tag.Name()}
	}

	if tag.MandatoryParent != "" {
		parent := el.Parent
		if parent == nil || parent.Type != html.ElementNode || !h.matches(parent, tag.MandatoryParent) {
			verr := fail(validation.CodeWrongParentTag)
			verr.RequiredParentName = tag.MandatoryParent
			if parent != nil && parent.Type == html.ElementNode {
				verr.ParentName = parent.Data
			}
			return verr
		}
	}

	for _, disallowed := range tag.DisallowedAncestors {
		if h.hasAncestor(el, disallowed) {
			verr := fail(validation.CodeDisallowedTagAncestor)
			verr.DisallowedAncestor = disallowed
			return verr
		}
	}

	if tag.MandatoryAncestor != "" && !h.hasAncestor(el, tag.MandatoryAncestor) {
		verr := fail(validation.CodeMandatoryTagAncestor)
		verr.RequiredAncestorName = tag.MandatoryAncestor
		return verr
	}

	if tag.ChildTags != nil {
		return validateChildTags(el, tag, fail)
	}
	return nil
}

func validateChildTags(el *html.Node, tag spec.TagSpec, fail func(validation.Code) *validation.Error) *validation.Error {
	ct := tag.ChildTags
	var children []*html.Node
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}

	if len(ct.FirstChildOneOf) > 0 && len(children) > 0 && !containsFold(ct.FirstChildOneOf, children[0].Data) {
		verr := fail(validation.CodeDisallowedFirstChildTag)
		verr.ChildTag = children[0].Data
		verr.AllowedTags = ct.FirstChildOneOf
		return verr
	}
	if len(ct.ChildOneOf) > 0 {
		for _, c := range children {
			if !containsFold(ct.ChildOneOf, c.Data) {
				verr := fail(validation.CodeDisallowedChildTag)
				verr.ChildTag = c.Data
				verr.AllowedTags = ct.ChildOneOf
				return verr
			}
		}
	}
	if ct.MandatoryNum != nil && len(children) != *ct.MandatoryNum {
		verr := fail(validation.CodeIncorrectNumChildTags)
		verr.ChildrenCount = len(children)
		verr.RequiredChildCount = *ct.MandatoryNum
		return verr
	}
	if ct.MandatoryMinNum != nil && len(children) < *ct.MandatoryMinNum {
		verr := fail(validation.CodeIncorrectMinNumChildTags)
		verr.ChildrenCount = len(children)
		verr.RequiredChildCount = *ct.MandatoryMinNum
		return verr
	}
	return nil
}

// hasAncestor reports whether a proper ancestor of el matches name. Plain
// tag names are answered from the open element counter, which holds el
// itself plus all of its ancestors during the walk.
func (h *HtmlSanitizer) hasAncestor(el *html.Node, name string) bool {
	if isPlainTagName(name) && h.root != nil {
		count := h.openElements[name]
		if el.Data == name {
			count--
		}
		return count > 0
	}
	for p := el.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && h.matches(p, name) {
			return true
		}
	}
	return false
}

// matches reports whether n matches a tag name or an attribute qualified
// selector such as template[type=amp-mustache].
func (h *HtmlSanitizer) matches(n *html.Node, selector string) bool {
	if isPlainTagName(selector) {
		return strings.EqualFold(n.Data, selector)
	}
	sel, ok := h.selectors[selector]
	if !ok {
		parsed, err := cascadia.Parse(selector)
		if err != nil {
			// not a selector, compare literally
			h.selectors[selector] = nil
			return strings.EqualFold(n.Data, selector)
		}
		sel = parsed
		h.selectors[selector] = sel
	}
	if sel == nil {
		return strings.EqualFold(n.Data, selector)
	}
	return sel.Match(n)
}

func isPlainTagName(s string) bool {
	return !strings.ContainsAny(s, "[]#.:> ")
}

func containsFold(list []string, s string) bool {
	for _, it := range list {
		if strings.EqualFold(it, s) {
			return true
		}
	}
	return false
}
