package sanitizer_test

import (
	"testing"

	"github.com/rohmanhakim/amp-sanitizer/internal/sanitizer"
	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func attrsForTest(kv ...string) []html.Attribute {
	var out []html.Attribute
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

func TestScore(t *testing.T) {
	runtime := spec.RuleCandidate{
		Tag: spec.TagSpec{TagName: "script", SpecName: "runtime"},
		Attrs: spec.AttrList{
			spec.Attr("src", spec.Mandatory{}, spec.Value("https://cdn.ampproject.org/v0.js")),
			spec.Attr("async", spec.Mandatory{}, spec.Value("")),
			spec.Attr("nonce"),
		},
	}
	plain := spec.RuleCandidate{
		Tag:   spec.TagSpec{TagName: "div"},
		Attrs: spec.AttrList{spec.Attr("title")},
	}

	tests := []struct {
		name      string
		attrs     []html.Attribute
		candidate spec.RuleCandidate
		expected  int
	}{
		{
			name:      "all mandatory values match",
			attrs:     attrsForTest("src", "https://cdn.ampproject.org/v0.js", "async", ""),
			candidate: runtime,
			expected:  12,
		},
		{
			name:      "boolean attribute written with its own name",
			attrs:     attrsForTest("src", "https://cdn.ampproject.org/v0.js", "async", "async"),
			candidate: runtime,
			expected:  12,
		},
		{
			name:      "unconstrained attribute adds two",
			attrs:     attrsForTest("src", "https://cdn.ampproject.org/v0.js", "async", "", "nonce", "n"),
			candidate: runtime,
			expected:  14,
		},
		{
			name:      "missing mandatory attribute",
			attrs:     attrsForTest("async", ""),
			candidate: runtime,
			expected:  0,
		},
		{
			name:      "violated value",
			attrs:     attrsForTest("src", "https://evil.example/v0.js", "async", ""),
			candidate: runtime,
			expected:  0,
		},
		{
			name:      "no mandatory attributes scores at least one",
			attrs:     attrsForTest("class", "x"),
			candidate: plain,
			expected:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizer.Score(tt.attrs, tt.candidate))
		})
	}
}

func TestScore_IsPure(t *testing.T) {
	attrs := attrsForTest("SRC", "x", "async", "")
	before := append([]html.Attribute(nil), attrs...)
	candidate := spec.RuleCandidate{Attrs: spec.AttrList{spec.Attr("src", spec.Mandatory{})}}

	first := sanitizer.Score(attrs, candidate)
	second := sanitizer.Score(attrs, candidate)

	assert.Equal(t, first, second)
	assert.Equal(t, 4, first, "attribute names compare case-insensitively")
	assert.Equal(t, before, attrs)
}

func TestSelectCandidate(t *testing.T) {
	carousel := spec.RuleCandidate{
		Tag:   spec.TagSpec{TagName: "amp-carousel", SpecName: "amp-carousel"},
		Attrs: spec.AttrList{spec.Attr("type", spec.ValueRegex(`carousel|slides`))},
	}
	lightbox := spec.RuleCandidate{
		Tag: spec.TagSpec{TagName: "amp-carousel", SpecName: "amp-carousel [lightbox]"},
		Attrs: spec.AttrList{
			spec.Attr("type", spec.ValueRegex(`carousel|slides`)),
			spec.Attr("lightbox", spec.Mandatory{}),
		},
	}

	t.Run("single candidate is used as is", func(t *testing.T) {
		chosen, ok := sanitizer.SelectCandidate(attrsForTest("lightbox", ""), []spec.RuleCandidate{carousel})
		require.True(t, ok)
		assert.Equal(t, "amp-carousel", chosen.Tag.SpecName)
	})

	t.Run("highest score wins", func(t *testing.T) {
		chosen, ok := sanitizer.SelectCandidate(attrsForTest("type", "slides", "lightbox", ""), []spec.RuleCandidate{carousel, lightbox})
		require.True(t, ok)
		assert.Equal(t, "amp-carousel [lightbox]", chosen.Tag.SpecName)
	})

	t.Run("zero scores are skipped", func(t *testing.T) {
		chosen, ok := sanitizer.SelectCandidate(attrsForTest("type", "slides"), []spec.RuleCandidate{lightbox, carousel})
		require.True(t, ok)
		assert.Equal(t, "amp-carousel", chosen.Tag.SpecName)
	})

	t.Run("ties are merged", func(t *testing.T) {
		a := spec.RuleCandidate{
			Tag:   spec.TagSpec{TagName: "x-tie", SpecName: "first"},
			Attrs: spec.AttrList{spec.Attr("kind", spec.Mandatory{}), spec.Attr("alpha")},
		}
		b := spec.RuleCandidate{
			Tag:   spec.TagSpec{TagName: "x-tie", SpecName: "second", Unique: true},
			Attrs: spec.AttrList{spec.Attr("kind", spec.Mandatory{}), spec.Attr("beta")},
		}

		chosen, ok := sanitizer.SelectCandidate(attrsForTest("kind", "k"), []spec.RuleCandidate{a, b})

		require.True(t, ok)
		assert.Equal(t, "second", chosen.Tag.SpecName)
		assert.True(t, chosen.Tag.Unique)
		_, hasAlpha := chosen.Attrs.Lookup("alpha")
		_, hasBeta := chosen.Attrs.Lookup("beta")
		assert.True(t, hasAlpha)
		assert.True(t, hasBeta)
	})

	t.Run("all zero", func(t *testing.T) {
		_, ok := sanitizer.SelectCandidate(nil, []spec.RuleCandidate{lightbox, lightbox})
		assert.False(t, ok)
	})
}
