package sanitizer

import (
	"sort"
	"strings"

	"github.com/rohmanhakim/amp-sanitizer/internal/layout"
	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"golang.org/x/net/html"
)

const bindPrefix = "data-amp-bind-"

// hrefDependents lose their meaning once href is removed from an anchor.
var hrefDependents = []string{"target", "download", "rel", "rev", "hreflang", "type"}

// validateAttributes scans the attributes of el, then applies removals
// and rewrites. Changes are deferred so the scan never sees a half
// modified attribute list.
func (h *HtmlSanitizer) validateAttributes(el *html.Node, chosen spec.RuleCandidate, allowed spec.AttrList, inTemplate bool) {
	var issues []attrIssue
	snapshot := append([]html.Attribute(nil), el.Attr...)

	for _, a := range snapshot {
		if h.isExemptAttr(el, a.Key) {
			continue
		}
		base := validation.Error{
			Node:      el,
			NodeName:  el.Data,
			SpecName:  chosen.Tag.Name(),
			Attr:      a.Key,
			AttrValue: a.Val,
		}

		as, ok := allowed.Lookup(a.Key)
		if !ok {
			if !isAllowedDataAttr(a.Key, allowed) {
				verr := base
				verr.Code = validation.CodeDisallowedAttr
				issues = append(issues, attrIssue{name: a.Key, err: verr})
			}
			continue
		}

		if inTemplate && layout.ContainsMustache(a.Val) {
			continue
		}
		issues = append(issues, h.checkAttrValue(as, a.Val, base)...)
	}

	for _, issue := range issues {
		if issue.fix != nil {
			h.rewriteAttribute(el, issue.name, issue.fix, issue.err)
			continue
		}
		if h.removeAttribute(el, issue.name, issue.err) {
			h.cleanUpAfterRemoval(el, issue.name)
		}
	}
}

// cleanUpAfterRemoval drops attributes that depend on a removed one.
func (h *HtmlSanitizer) cleanUpAfterRemoval(el *html.Node, removed string) {
	if el.Data != "a" || !strings.EqualFold(removed, "href") {
		return
	}
	for _, dep := range hrefDependents {
		if !h.isExemptAttr(el, dep) {
			deleteAttr(el, dep)
		}
	}
}

// isAllowedDataAttr accepts data-* attributes. Binding attributes,
// data-amp-bind-x and [x], need x itself to be allowed. The text binding
// applies to every element.
func isAllowedDataAttr(name string, allowed spec.AttrList) bool {
	if target, ok := bindTarget(name); ok {
		if target == "text" {
			return true
		}
		if _, found := allowed.Lookup(target); found {
			return true
		}
		return isPlainDataAttr(target)
	}
	return isPlainDataAttr(name)
}

func isPlainDataAttr(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasPrefix(lower, "data-") && len(lower) > len("data-") && !strings.HasPrefix(lower, bindPrefix)
}

// bindTarget returns x for data-amp-bind-x and [x].
func bindTarget(name string) (string, bool) {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, bindPrefix) && len(lower) > len(bindPrefix) {
		return lower[len(bindPrefix):], true
	}
	if len(lower) > 2 && lower[0] == '[' && lower[len(lower)-1] == ']' {
		return lower[1 : len(lower)-1], true
	}
	return "", false
}

// ruleOrder fixes the order value checks run in, independent of the
// order rules are declared in.
func ruleOrder(r spec.Rule) int {
	switch r.(type) {
	case spec.Mandatory:
		return 0
	case spec.Value:
		return 1
	case spec.ValueCasei:
		return 2
	case spec.ValueRegex:
		return 3
	case spec.ValueRegexCasei:
		return 4
	case spec.AllowedProtocol, spec.AllowRelative, spec.AllowEmpty, spec.DisallowedDomain:
		return 5
	case spec.DisallowedValueRegex:
		return 6
	case spec.ValueProperties:
		return 7
	default:
		return 8
	}
}

// checkAttrValue runs the value constraints of as. The first failing
// value check wins. Value properties report one issue per property.
func (h *HtmlSanitizer) checkAttrValue(as spec.AttrSpec, value string, base validation.Error) []attrIssue {
	rules := append([]spec.Rule(nil), as.Rules...)
	sort.SliceStable(rules, func(i, j int) bool { return ruleOrder(rules[i]) < ruleOrder(rules[j]) })

	remove := func(code validation.Code, decorate func(*validation.Error)) []attrIssue {
		verr := base
		verr.Code = code
		if decorate != nil {
			decorate(&verr)
		}
		return []attrIssue{{name: base.Attr, err: verr}}
	}

	urlChecked := false
	for _, r := range rules {
		switch rule := r.(type) {
		case spec.Mandatory:
			// checked once the value repairs are applied
		case spec.Value:
			if !valueMatches(rule, as.Name, value) {
				return remove(validation.CodeInvalidAttrValue, nil)
			}
		case spec.ValueCasei:
			if !strings.EqualFold(string(rule), value) {
				return remove(validation.CodeInvalidAttrValueCasei, nil)
			}
		case spec.ValueRegex:
			if !h.fullMatch(string(rule), value, false) {
				return remove(validation.CodeInvalidAttrValueRegex, nil)
			}
		case spec.ValueRegexCasei:
			if !h.fullMatch(string(rule), value, true) {
				return remove(validation.CodeInvalidAttrValueRegexCasei, nil)
			}
		case spec.AllowedProtocol, spec.AllowRelative, spec.AllowEmpty, spec.DisallowedDomain:
			if urlChecked {
				continue
			}
			urlChecked = true
			if issues := h.checkURLAttr(as, value, base); len(issues) > 0 {
				return issues
			}
		case spec.DisallowedValueRegex:
			if h.contains(string(rule), value) {
				return remove(validation.CodeInvalidAttrValue, nil)
			}
		case spec.ValueProperties:
			if issues := checkProperties(rule, value, base); len(issues) > 0 {
				return issues
			}
		}
	}
	return nil
}

// validateMandatoryAttrs re-checks mandatory attributes and attribute
// groups after repairs. It reports whether el survived unchanged.
func (h *HtmlSanitizer) validateMandatoryAttrs(el *html.Node, chosen spec.RuleCandidate) bool {
	base := validation.Error{Node: el, NodeName: el.Data, SpecName: chosen.Tag.Name()}

	for _, as := range chosen.Attrs.Mandatory() {
		if hasAnyAttr(el, as.Names()) {
			continue
		}
		verr := base
		verr.Code = validation.CodeAttrRequiredButMissing
		verr.Attr = as.Name
		h.removeOrReplace(el, verr)
		return false
	}

	if group := chosen.Tag.MandatoryAnyOf; len(group) > 0 && countAttrs(el, group) == 0 {
		verr := base
		verr.Code = validation.CodeMandatoryAnyofAttrMissing
		verr.Attributes = group
		h.removeNode(el, verr)
		return false
	}

	if group := chosen.Tag.MandatoryOneOf; len(group) > 0 {
		switch n := countAttrs(el, group); {
		case n == 0:
			verr := base
			verr.Code = validation.CodeMandatoryOneofAttrMissing
			verr.Attributes = group
			h.removeNode(el, verr)
			return false
		case n > 1:
			verr := base
			verr.Code = validation.CodeDuplicateOneofAttrs
			verr.Attributes = group
			h.removeNode(el, verr)
			return false
		}
	}
	return true
}

func hasAnyAttr(el *html.Node, names []string) bool {
	return countAttrs(el, names) > 0
}

func countAttrs(el *html.Node, names []string) int {
	n := 0
	for _, name := range names {
		if hasAttr(el, name) {
			n++
		}
	}
	return n
}
