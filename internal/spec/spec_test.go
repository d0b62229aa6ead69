package spec_test

import (
	"testing"

	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLayout(t *testing.T) {
	tests := []struct {
		raw      string
		expected spec.Layout
		ok       bool
	}{
		{raw: "responsive", expected: spec.LayoutResponsive, ok: true},
		{raw: " Fixed-Height ", expected: spec.LayoutFixedHeight, ok: true},
		{raw: "flex-item", expected: spec.LayoutFlexItem, ok: true},
		{raw: "stretchy", expected: spec.Layout("stretchy"), ok: false},
		{raw: "", expected: spec.LayoutUnknown, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := spec.ParseLayout(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLayoutSpec_Supports(t *testing.T) {
	ls := &spec.LayoutSpec{SupportedLayouts: []spec.Layout{spec.LayoutFixed, spec.LayoutNodisplay}}

	assert.True(t, ls.Supports(spec.LayoutFixed))
	assert.False(t, ls.Supports(spec.LayoutResponsive))

	var none *spec.LayoutSpec
	assert.False(t, none.Supports(spec.LayoutFixed))
}

func TestFind(t *testing.T) {
	rules := []spec.Rule{spec.Mandatory{}, spec.AllowedProtocol{"https"}, spec.AllowRelative(false)}

	protocols, ok := spec.Find[spec.AllowedProtocol](rules)
	require.True(t, ok)
	assert.Equal(t, spec.AllowedProtocol{"https"}, protocols)

	relative, ok := spec.Find[spec.AllowRelative](rules)
	require.True(t, ok)
	assert.False(t, bool(relative))

	_, ok = spec.Find[spec.ValueRegex](rules)
	assert.False(t, ok)
	assert.True(t, spec.Has[spec.Mandatory](rules))
}

func TestAttrSpec(t *testing.T) {
	src := spec.Attr("src", spec.Mandatory{}, spec.AllowedProtocol{"https"}).WithAlternatives("srcset")

	assert.True(t, src.IsMandatory())
	assert.True(t, src.IsURL())
	assert.Equal(t, []string{"src", "srcset"}, src.Names())
	assert.False(t, spec.Attr("alt").IsURL())
}

func TestAttrList_LookupIsCaseInsensitive(t *testing.T) {
	list := spec.AttrList{spec.Attr("data-videoid"), spec.Attr("autoplay", spec.Value(""))}

	got, ok := list.Lookup("AutoPlay")
	require.True(t, ok)
	assert.Equal(t, "autoplay", got.Name)

	_, ok = list.Lookup("loop")
	assert.False(t, ok)
}

func TestAttrList_Merge(t *testing.T) {
	a := spec.AttrList{spec.Attr("type", spec.ValueRegex(`carousel|slides`)), spec.Attr("loop")}
	b := spec.AttrList{spec.Attr("loop", spec.Value("")), spec.Attr("lightbox", spec.Mandatory{})}

	merged := a.Merge(b)

	require.Len(t, merged, 3)
	assert.Equal(t, "type", merged[0].Name)
	assert.Equal(t, "loop", merged[1].Name)
	assert.Equal(t, []spec.Rule{spec.Value("")}, merged[1].Rules)
	assert.Equal(t, "lightbox", merged[2].Name)
	assert.Len(t, a, 2, "receiver must not be modified")
	assert.Len(t, merged.Mandatory(), 1)
}

func TestMergeTagSpecs_LastNonZeroWins(t *testing.T) {
	a := spec.TagSpec{TagName: "noscript", SpecName: "first", MandatoryParent: "head", Unique: true}
	b := spec.TagSpec{TagName: "noscript", SpecName: "second", MandatoryAncestor: "body"}

	merged := spec.MergeTagSpecs(a, b)

	assert.Equal(t, "second", merged.SpecName)
	// conflicting constraints are kept side by side, nothing re-validates them
	assert.Equal(t, "head", merged.MandatoryParent)
	assert.Equal(t, "body", merged.MandatoryAncestor)
	assert.True(t, merged.Unique)
}

func TestMergeCandidates(t *testing.T) {
	first := spec.RuleCandidate{
		Tag:   spec.TagSpec{TagName: "x-widget", SpecName: "x-widget", RequiresExtension: []string{"x-widget"}},
		Attrs: spec.AttrList{spec.Attr("mode")},
		Cdata: &spec.CdataSpec{MaxBytes: 10},
	}
	second := spec.RuleCandidate{
		Tag:   spec.TagSpec{TagName: "x-widget", SpecName: "x-widget [fancy]"},
		Attrs: spec.AttrList{spec.Attr("fancy")},
	}

	merged := spec.MergeCandidates([]spec.RuleCandidate{first, second})

	assert.Equal(t, "x-widget [fancy]", merged.Tag.Name())
	assert.Equal(t, []string{"x-widget"}, merged.Tag.RequiresExtension)
	assert.Len(t, merged.Attrs, 2)
	require.NotNil(t, merged.Cdata)
	assert.Equal(t, 10, merged.Cdata.MaxBytes)
	assert.Len(t, first.Attrs, 1)
}

func TestPropertySpec_RequiredValue(t *testing.T) {
	one := 1.0
	v, ok := spec.PropertySpec{Name: "initial-scale", ValueDouble: &one}.RequiredValue()
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	v, ok = spec.PropertySpec{Name: "width", Value: "device-width"}.RequiredValue()
	assert.True(t, ok)
	assert.Equal(t, "device-width", v)

	_, ok = spec.PropertySpec{Name: "height"}.RequiredValue()
	assert.False(t, ok)
}

func TestTable_Candidates(t *testing.T) {
	table := &spec.Table{}
	table.Add(spec.RuleCandidate{Tag: spec.TagSpec{TagName: "div"}})

	got, ok := table.Candidates("div")
	assert.True(t, ok)
	assert.Len(t, got, 1)

	_, ok = table.Candidates("foo-bar")
	assert.False(t, ok)
}
