package sanitizer

import (
	"strings"

	"github.com/rohmanhakim/amp-sanitizer/internal/metadata"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// alwaysRemove lists tags that are removed with their subtree instead of
// being replaced by their children.
var alwaysRemove = map[atom.Atom]bool{
	atom.Form:   true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Script: true,
	atom.Style:  true,
}

// structural elements are never removed by a cascade
var structural = map[atom.Atom]bool{
	atom.Html: true,
	atom.Head: true,
	atom.Body: true,
}

func (h *HtmlSanitizer) RemoveInvalidChild(node *html.Node, verr validation.Error) bool {
	if node == nil {
		return false
	}
	if verr.Node == nil {
		verr.Node = node
	}
	if verr.NodeName == "" {
		verr.NodeName = node.Data
	}
	return h.removeNode(node, verr)
}

func (h *HtmlSanitizer) RemoveInvalidAttribute(element *html.Node, attrName string, verr validation.Error) bool {
	if element == nil {
		return false
	}
	if verr.Node == nil {
		verr.Node = element
	}
	if verr.NodeName == "" {
		verr.NodeName = element.Data
	}
	if verr.Attr == "" {
		verr.Attr = attrName
	}
	return h.removeAttribute(element, attrName, verr)
}

// decide offers verr to the decision callback and records the outcome.
func (h *HtmlSanitizer) decide(verr validation.Error, action validation.Action) bool {
	accepted := h.param.ShouldSanitize(verr, validation.Context{Root: h.root, Action: action})
	h.reports = append(h.reports, Report{Error: verr, Sanitized: accepted})

	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrTag, verr.NodeName),
	}
	if verr.Attr != "" {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrAttribute, verr.Attr))
	}
	if verr.SpecName != "" {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrSpecName, verr.SpecName))
	}
	if verr.Node != nil {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrNodePath, nodePath(verr.Node)))
	}
	h.metadataSink.RecordValidation(string(verr.Code), accepted, attrs)
	return accepted
}

// removeOrReplace unwraps el unless its tag must go with its subtree.
func (h *HtmlSanitizer) removeOrReplace(el *html.Node, verr validation.Error) bool {
	if alwaysRemove[tagAtom(el)] {
		return h.removeNode(el, verr)
	}
	return h.replaceWithChildren(el, verr)
}

// removeNode detaches n with its subtree. Parents left without children
// and attributes are removed as well, up to the root.
func (h *HtmlSanitizer) removeNode(n *html.Node, verr validation.Error) bool {
	if n == h.root || n.Parent == nil {
		return false
	}
	if !h.decide(verr, validation.ActionRemoveNode) {
		h.markExemptNode(n)
		return false
	}
	h.detach(n)
	return true
}

// replaceWithChildren moves the children of n into its place and drops n.
// A node is offered for replacement at most once.
func (h *HtmlSanitizer) replaceWithChildren(n *html.Node, verr validation.Error) bool {
	if n == h.root || n.Parent == nil {
		return false
	}
	if _, offered := h.replaceOffered[n]; offered {
		return false
	}
	h.replaceOffered[n] = struct{}{}
	if n.FirstChild == nil {
		return h.removeNode(n, verr)
	}
	if !h.decide(verr, validation.ActionReplaceWithChildren) {
		h.markExemptNode(n)
		return false
	}
	parent := n.Parent
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
	h.removed++
	return true
}

func (h *HtmlSanitizer) detach(n *html.Node) {
	parent := n.Parent
	parent.RemoveChild(n)
	h.removed++
	for parent != h.root && isDisposable(parent) {
		grand := parent.Parent
		grand.RemoveChild(parent)
		h.removed++
		parent = grand
	}
}

func isDisposable(n *html.Node) bool {
	return n != nil &&
		n.Parent != nil &&
		n.Type == html.ElementNode &&
		!structural[tagAtom(n)] &&
		n.FirstChild == nil &&
		len(n.Attr) == 0
}

// tagAtom falls back to a lookup for nodes built without the parser.
func tagAtom(n *html.Node) atom.Atom {
	if n.DataAtom != 0 {
		return n.DataAtom
	}
	return atom.Lookup([]byte(n.Data))
}

func (h *HtmlSanitizer) removeAttribute(el *html.Node, name string, verr validation.Error) bool {
	if h.isExemptAttr(el, name) || !hasAttr(el, name) {
		return false
	}
	if !h.decide(verr, validation.ActionRemoveAttribute) {
		h.markExemptAttr(el, name)
		return false
	}
	deleteAttr(el, name)
	return true
}

func (h *HtmlSanitizer) rewriteAttribute(el *html.Node, name string, fix func(string) string, verr validation.Error) bool {
	current, ok := getAttr(el, name)
	if h.isExemptAttr(el, name) || !ok {
		return false
	}
	if !h.decide(verr, validation.ActionRewriteAttribute) {
		h.markExemptAttr(el, name)
		return false
	}
	setAttr(el, name, fix(current))
	return true
}

func (h *HtmlSanitizer) markExemptNode(n *html.Node) {
	h.exemptNodes[n] = struct{}{}
}

func (h *HtmlSanitizer) isExemptNode(n *html.Node) bool {
	_, ok := h.exemptNodes[n]
	return ok
}

func (h *HtmlSanitizer) markExemptAttr(el *html.Node, name string) {
	set, ok := h.exemptAttrs[el]
	if !ok {
		set = make(map[string]struct{})
		h.exemptAttrs[el] = set
	}
	set[strings.ToLower(name)] = struct{}{}
}

func (h *HtmlSanitizer) isExemptAttr(el *html.Node, name string) bool {
	_, ok := h.exemptAttrs[el][strings.ToLower(name)]
	return ok
}

func getAttr(el *html.Node, name string) (string, bool) {
	for _, a := range el.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(el *html.Node, name string) bool {
	_, ok := getAttr(el, name)
	return ok
}

func setAttr(el *html.Node, name, value string) {
	for i := range el.Attr {
		if strings.EqualFold(el.Attr[i].Key, name) {
			el.Attr[i].Val = value
			return
		}
	}
	el.Attr = append(el.Attr, html.Attribute{Key: name, Val: value})
}

func deleteAttr(el *html.Node, name string) {
	kept := el.Attr[:0]
	for _, a := range el.Attr {
		if !strings.EqualFold(a.Key, name) {
			kept = append(kept, a)
		}
	}
	el.Attr = kept
}

// nodePath renders the element names from the document down to n.
func nodePath(n *html.Node) string {
	var parts []string
	for p := n; p != nil; p = p.Parent {
		switch p.Type {
		case html.ElementNode:
			parts = append(parts, p.Data)
		case html.CommentNode:
			parts = append(parts, "#comment")
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, " > ")
}
