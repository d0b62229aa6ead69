package spec

import "strings"

// Layout is an AMP layout keyword.
type Layout string

const (
	LayoutUnknown     Layout = ""
	LayoutNodisplay   Layout = "nodisplay"
	LayoutFixed       Layout = "fixed"
	LayoutFixedHeight Layout = "fixed-height"
	LayoutResponsive  Layout = "responsive"
	LayoutContainer   Layout = "container"
	LayoutFill        Layout = "fill"
	LayoutFlexItem    Layout = "flex-item"
	LayoutFluid       Layout = "fluid"
	LayoutIntrinsic   Layout = "intrinsic"
)

var knownLayouts = map[Layout]struct{}{
	LayoutNodisplay:   {},
	LayoutFixed:       {},
	LayoutFixedHeight: {},
	LayoutResponsive:  {},
	LayoutContainer:   {},
	LayoutFill:        {},
	LayoutFlexItem:    {},
	LayoutFluid:       {},
	LayoutIntrinsic:   {},
}

// ParseLayout parses a layout attribute value. Matching is ASCII case
// insensitive and ignores surrounding whitespace. The second return value
// is false for unknown keywords.
func ParseLayout(raw string) (Layout, bool) {
	l := Layout(strings.ToLower(strings.TrimSpace(raw)))
	_, ok := knownLayouts[l]
	return l, ok
}

// LayoutSpec describes the layout capability of a tag.
type LayoutSpec struct {
	SupportedLayouts     []Layout `json:"supported_layouts"`
	DefinesDefaultWidth  bool     `json:"defines_default_width,omitempty"`
	DefinesDefaultHeight bool     `json:"defines_default_height,omitempty"`
}

// Supports reports whether layout is one of the supported layouts.
func (l *LayoutSpec) Supports(layout Layout) bool {
	if l == nil {
		return false
	}
	for _, s := range l.SupportedLayouts {
		if s == layout {
			return true
		}
	}
	return false
}
