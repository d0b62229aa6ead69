package layout

import (
	"regexp"
	"strings"

	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"golang.org/x/net/html"
)

var mustachePattern = regexp.MustCompile(`\{\{.+?\}\}`)

// ContainsMustache reports whether s holds a {{ }} template placeholder.
func ContainsMustache(s string) bool {
	return mustachePattern.MatchString(s)
}

var layoutRelevantAttrs = []string{"layout", "width", "height", "sizes", "heights"}

// Validate checks the layout attributes of el against tag's layout
// capability. It returns nil when the element is valid or when tag declares
// no layout capability. The first failing rule is returned.
func Validate(tag spec.TagSpec, el *html.Node, inTemplate bool) *validation.Error {
	ls := tag.Layout
	if ls == nil {
		return nil
	}
	attrs := attrMap(el)
	if inTemplate {
		for _, name := range layoutRelevantAttrs {
			if v, ok := attrs[name]; ok && ContainsMustache(v) {
				return nil
			}
		}
	}

	fail := func(code validation.Code) *validation.Error {
		return &validation.Error{
			Code:     code,
			Node:     el,
			NodeName: el.Data,
			SpecName: tag.Name(),
		}
	}

	layoutAttr, hasLayout := attrs["layout"]
	inputLayout := spec.LayoutUnknown
	if hasLayout {
		parsed, ok := spec.ParseLayout(layoutAttr)
		if !ok {
			err := fail(validation.CodeSpecifiedLayoutInvalid)
			err.Layout = layoutAttr
			return err
		}
		inputLayout = parsed
	}

	allowFluid := inputLayout == spec.LayoutFluid
	widthAttr, hasWidth := attrs["width"]
	inputWidth := ParseCSSLength(widthAttr, hasWidth, true, allowFluid)
	if !inputWidth.IsValid() {
		err := fail(validation.CodeInvalidLayoutWidth)
		err.Attr = "width"
		err.AttrValue = widthAttr
		return err
	}
	heightAttr, hasHeight := attrs["height"]
	inputHeight := ParseCSSLength(heightAttr, hasHeight, true, allowFluid)
	if !inputHeight.IsValid() {
		err := fail(validation.CodeInvalidLayoutHeight)
		err.Attr = "height"
		err.AttrValue = heightAttr
		return err
	}

	width := inputWidth
	if ls.DefinesDefaultWidth && !inputWidth.IsSet() &&
		(inputLayout == spec.LayoutUnknown || inputLayout == spec.LayoutFixed) {
		width = defaultLength()
	}
	height := inputHeight
	if ls.DefinesDefaultHeight && !inputHeight.IsSet() &&
		(inputLayout == spec.LayoutUnknown || inputLayout == spec.LayoutFixed || inputLayout == spec.LayoutFixedHeight) {
		height = defaultLength()
	}

	_, hasSizes := attrs["sizes"]
	_, hasHeights := attrs["heights"]
	effective := Calculate(inputLayout, width, height, hasSizes, hasHeights)

	if !ls.Supports(effective) {
		code := validation.CodeImpliedLayoutInvalid
		if hasLayout {
			code = validation.CodeSpecifiedLayoutInvalid
		}
		if !hasLayout && effective == spec.LayoutContainer &&
			!width.IsSet() && !height.IsSet() && ls.Supports(spec.LayoutResponsive) {
			code = validation.CodeMissingLayoutAttributes
		}
		err := fail(code)
		err.Layout = string(effective)
		return err
	}

	if height.IsAuto() && effective != spec.LayoutFlexItem {
		err := fail(validation.CodeInvalidLayoutAutoHeight)
		err.Layout = string(effective)
		return err
	}

	switch effective {
	case spec.LayoutFixed, spec.LayoutFixedHeight, spec.LayoutIntrinsic, spec.LayoutResponsive:
		if !height.IsSet() {
			err := fail(validation.CodeInvalidLayoutNoHeight)
			err.Layout = string(effective)
			return err
		}
	}

	if effective == spec.LayoutFixedHeight && width.IsSet() && !width.IsAuto() {
		err := fail(validation.CodeInvalidLayoutFixedHeight)
		err.AttrValue = widthAttr
		return err
	}

	switch effective {
	case spec.LayoutFixed, spec.LayoutIntrinsic, spec.LayoutResponsive:
		if !width.IsSet() {
			err := fail(validation.CodeInvalidLayoutNoWidth)
			err.Layout = string(effective)
			return err
		}
		if width.IsAuto() {
			err := fail(validation.CodeInvalidLayoutAutoWidth)
			err.Layout = string(effective)
			return err
		}
	}

	if (effective == spec.LayoutIntrinsic || effective == spec.LayoutResponsive) && width.Unit() != height.Unit() {
		err := fail(validation.CodeInvalidLayoutUnitDimensions)
		err.Dimension = width.Unit()
		err.AttrValue = height.Unit()
		return err
	}

	if hasHeights && effective != spec.LayoutResponsive {
		err := fail(validation.CodeInvalidLayoutHeights)
		err.Layout = string(effective)
		return err
	}

	return nil
}

// Calculate resolves the effective layout. An explicit layout wins;
// otherwise the layout is implied from the dimensions.
func Calculate(input spec.Layout, width, height CSSLength, hasSizes, hasHeights bool) spec.Layout {
	switch {
	case input != spec.LayoutUnknown:
		return input
	case !width.IsSet() && !height.IsSet():
		return spec.LayoutContainer
	case width.IsFluid() || height.IsFluid():
		return spec.LayoutFluid
	case height.IsSet() && (!width.IsSet() || width.IsAuto()):
		return spec.LayoutFixedHeight
	case height.IsSet() && width.IsSet() && (hasSizes || hasHeights):
		return spec.LayoutResponsive
	default:
		return spec.LayoutFixed
	}
}

func attrMap(el *html.Node) map[string]string {
	m := make(map[string]string, len(el.Attr))
	for _, a := range el.Attr {
		m[strings.ToLower(a.Key)] = a.Val
	}
	return m
}
