package layout_test

import (
	"testing"

	"github.com/rohmanhakim/amp-sanitizer/internal/layout"
	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSSLength(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		present    bool
		allowFluid bool
		valid      bool
		set        bool
		auto       bool
		numeral    float64
		unit       string
	}{
		{name: "absent", present: false, valid: true, unit: "px"},
		{name: "plain number defaults to px", raw: "100", present: true, valid: true, set: true, numeral: 100, unit: "px"},
		{name: "decimal em", raw: "1.5em", present: true, valid: true, set: true, numeral: 1.5, unit: "em"},
		{name: "percent", raw: "100%", present: true, valid: true, set: true, numeral: 100, unit: "%"},
		{name: "surrounding space", raw: " 20vw ", present: true, valid: true, set: true, numeral: 20, unit: "vw"},
		{name: "auto", raw: "auto", present: true, valid: true, set: true, auto: true, unit: "px"},
		{name: "fluid without fluid layout", raw: "fluid", present: true, valid: false, set: true, unit: "px"},
		{name: "fluid with fluid layout", raw: "fluid", present: true, allowFluid: true, valid: true, set: true, unit: "px"},
		{name: "unknown unit", raw: "10pt", present: true, valid: false, set: true, unit: "px"},
		{name: "empty", raw: "", present: true, valid: false, set: true, unit: "px"},
		{name: "negative", raw: "-10", present: true, valid: false, set: true, unit: "px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layout.ParseCSSLength(tt.raw, tt.present, true, tt.allowFluid)
			assert.Equal(t, tt.valid, l.IsValid())
			assert.Equal(t, tt.set, l.IsSet())
			assert.Equal(t, tt.auto, l.IsAuto())
			assert.Equal(t, tt.numeral, l.Numeral())
			assert.Equal(t, tt.unit, l.Unit())
		})
	}
}

func TestParseCSSLength_AutoDisallowed(t *testing.T) {
	l := layout.ParseCSSLength("auto", true, false, false)
	assert.False(t, l.IsValid())
}

func TestCalculate(t *testing.T) {
	unset := layout.ParseCSSLength("", false, true, false)
	px := layout.ParseCSSLength("100", true, true, false)
	auto := layout.ParseCSSLength("auto", true, true, false)
	fluid := layout.ParseCSSLength("fluid", true, true, true)

	tests := []struct {
		name       string
		input      spec.Layout
		width      layout.CSSLength
		height     layout.CSSLength
		hasSizes   bool
		hasHeights bool
		expected   spec.Layout
	}{
		{name: "explicit wins", input: spec.LayoutFill, width: px, height: px, expected: spec.LayoutFill},
		{name: "no dimensions", width: unset, height: unset, expected: spec.LayoutContainer},
		{name: "fluid height", width: unset, height: fluid, expected: spec.LayoutFluid},
		{name: "height only", width: unset, height: px, expected: spec.LayoutFixedHeight},
		{name: "auto width", width: auto, height: px, expected: spec.LayoutFixedHeight},
		{name: "sizes", width: px, height: px, hasSizes: true, expected: spec.LayoutResponsive},
		{name: "heights", width: px, height: px, hasHeights: true, expected: spec.LayoutResponsive},
		{name: "both dimensions", width: px, height: px, expected: spec.LayoutFixed},
		{name: "width only", width: px, height: unset, expected: spec.LayoutFixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := layout.Calculate(tt.input, tt.width, tt.height, tt.hasSizes, tt.hasHeights)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidate(t *testing.T) {
	sidebar := &spec.LayoutSpec{SupportedLayouts: []spec.Layout{spec.LayoutNodisplay}}
	pixel := &spec.LayoutSpec{SupportedLayouts: []spec.Layout{spec.LayoutFixed, spec.LayoutNodisplay}, DefinesDefaultWidth: true, DefinesDefaultHeight: true}
	fluid := &spec.LayoutSpec{SupportedLayouts: []spec.Layout{spec.LayoutFluid, spec.LayoutFixed}}

	tests := []struct {
		name     string
		ls       *spec.LayoutSpec
		tag      string
		attrs    []string
		expected validation.Code
	}{
		{name: "width without height", ls: mediaLayout(), tag: "amp-img", attrs: []string{"width", "100"}, expected: validation.CodeInvalidLayoutNoHeight},
		{name: "percent dimensions resolve to fixed", ls: mediaLayout(), tag: "amp-video", attrs: []string{"width", "100%", "height", "100%"}},
		{name: "percent dimensions with sizes resolve to responsive", ls: mediaLayout(), tag: "amp-video", attrs: []string{"width", "100%", "height", "100%", "sizes", "50vw"}},
		{name: "responsive units differ", ls: mediaLayout(), tag: "amp-img", attrs: []string{"width", "100", "height", "50%", "sizes", "50vw"}, expected: validation.CodeInvalidLayoutUnitDimensions},
		{name: "unknown layout", ls: mediaLayout(), tag: "amp-img", attrs: []string{"layout", "stretchy", "width", "1", "height", "1"}, expected: validation.CodeSpecifiedLayoutInvalid},
		{name: "unsupported specified layout", ls: mediaLayout(), tag: "amp-img", attrs: []string{"layout", "container"}, expected: validation.CodeSpecifiedLayoutInvalid},
		{name: "bad width", ls: mediaLayout(), tag: "amp-img", attrs: []string{"width", "wide", "height", "1"}, expected: validation.CodeInvalidLayoutWidth},
		{name: "bad height", ls: mediaLayout(), tag: "amp-img", attrs: []string{"width", "1", "height", "tall"}, expected: validation.CodeInvalidLayoutHeight},
		{name: "auto height", ls: mediaLayout(), tag: "amp-img", attrs: []string{"width", "10", "height", "auto"}, expected: validation.CodeInvalidLayoutAutoHeight},
		{name: "auto height flex-item", ls: mediaLayout(), tag: "amp-img", attrs: []string{"layout", "flex-item", "height", "auto"}},
		{name: "no dimensions but responsive supported", ls: mediaLayout(), tag: "amp-img", expected: validation.CodeMissingLayoutAttributes},
		{name: "implied container unsupported", ls: sidebar, tag: "amp-sidebar", expected: validation.CodeImpliedLayoutInvalid},
		{name: "nodisplay sidebar", ls: sidebar, tag: "amp-sidebar", attrs: []string{"layout", "nodisplay"}},
		{name: "pixel default dimensions", ls: pixel, tag: "amp-pixel"},
		{name: "fixed-height with width", ls: mediaLayout(), tag: "amp-img", attrs: []string{"layout", "fixed-height", "height", "50", "width", "100"}, expected: validation.CodeInvalidLayoutFixedHeight},
		{name: "fixed-height with auto width", ls: mediaLayout(), tag: "amp-img", attrs: []string{"layout", "fixed-height", "height", "50", "width", "auto"}},
		{name: "fixed with auto width", ls: mediaLayout(), tag: "amp-img", attrs: []string{"layout", "fixed", "height", "20", "width", "auto"}, expected: validation.CodeInvalidLayoutAutoWidth},
		{name: "responsive without width", ls: mediaLayout(), tag: "amp-img", attrs: []string{"layout", "responsive", "height", "20"}, expected: validation.CodeInvalidLayoutNoWidth},
		{name: "heights outside responsive", ls: mediaLayout(), tag: "amp-img", attrs: []string{"layout", "fixed", "width", "10", "height", "10", "heights", "(min-width: 500px) 200px, 80%"}, expected: validation.CodeInvalidLayoutHeights},
		{name: "fluid layout", ls: fluid, tag: "amp-list", attrs: []string{"layout", "fluid", "height", "fluid"}},
		{name: "fluid height without fluid layout", ls: fluid, tag: "amp-list", attrs: []string{"height", "fluid"}, expected: validation.CodeInvalidLayoutHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := layout.Validate(tagWith(tt.tag, tt.ls), element(tt.tag, tt.attrs...), false)
			if tt.expected == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, tt.expected, err.Code)
			assert.Equal(t, tt.tag, err.NodeName)
		})
	}
}

func TestValidate_NoLayoutSpec(t *testing.T) {
	err := layout.Validate(spec.TagSpec{TagName: "div"}, element("div", "width", "nonsense"), false)
	assert.Nil(t, err)
}

func TestValidate_MustacheInsideTemplate(t *testing.T) {
	el := element("amp-img", "width", "{{w}}", "height", "{{h}}")

	assert.Nil(t, layout.Validate(tagWith("amp-img", mediaLayout()), el, true))

	err := layout.Validate(tagWith("amp-img", mediaLayout()), el, false)
	require.NotNil(t, err)
	assert.Equal(t, validation.CodeInvalidLayoutWidth, err.Code)
	assert.Equal(t, "{{w}}", err.AttrValue)
}

func TestContainsMustache(t *testing.T) {
	assert.True(t, layout.ContainsMustache("/img/{{id}}.png"))
	assert.False(t, layout.ContainsMustache("{{}}"))
	assert.False(t, layout.ContainsMustache("plain"))
}
