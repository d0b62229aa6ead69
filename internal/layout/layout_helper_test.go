package layout_test

import (
	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"golang.org/x/net/html"
)

// element builds a detached element from name/value pairs.
func element(tag string, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func tagWith(name string, ls *spec.LayoutSpec) spec.TagSpec {
	return spec.TagSpec{TagName: name, Layout: ls}
}

func mediaLayout() *spec.LayoutSpec {
	return &spec.LayoutSpec{SupportedLayouts: []spec.Layout{
		spec.LayoutFill, spec.LayoutFixed, spec.LayoutFixedHeight, spec.LayoutFlexItem,
		spec.LayoutIntrinsic, spec.LayoutNodisplay, spec.LayoutResponsive,
	}}
}
