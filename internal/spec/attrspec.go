package spec

import (
	"strconv"
	"strings"
)

// AttrSpec describes one allowed attribute.
type AttrSpec struct {
	Name string `json:"name"`
	// AlternativeNames satisfy a Mandatory rule on Name.
	AlternativeNames  []string `json:"alternative_names,omitempty"`
	Rules             []Rule   `json:"-"`
	RequiresExtension []string `json:"requires_extension,omitempty"`
}

// Attr builds an AttrSpec.
func Attr(name string, rules ...Rule) AttrSpec {
	return AttrSpec{Name: name, Rules: rules}
}

// WithAlternatives returns a copy of a accepting names as stand-ins for a
// mandatory attribute.
func (a AttrSpec) WithAlternatives(names ...string) AttrSpec {
	a.AlternativeNames = append(append([]string(nil), a.AlternativeNames...), names...)
	return a
}

// WithExtension returns a copy of a that requires the named extensions
// when the attribute is kept.
func (a AttrSpec) WithExtension(names ...string) AttrSpec {
	a.RequiresExtension = append(append([]string(nil), a.RequiresExtension...), names...)
	return a
}

func (a AttrSpec) IsMandatory() bool {
	return Has[Mandatory](a.Rules)
}

// IsURL reports whether the attribute carries URL constraints.
func (a AttrSpec) IsURL() bool {
	return Has[AllowedProtocol](a.Rules) || Has[AllowRelative](a.Rules) ||
		Has[AllowEmpty](a.Rules) || Has[DisallowedDomain](a.Rules)
}

// Names returns Name followed by the alternative names.
func (a AttrSpec) Names() []string {
	return append([]string{a.Name}, a.AlternativeNames...)
}

// AttrList is an ordered list of attribute specs keyed by name.
type AttrList []AttrSpec

// Lookup finds the spec for an attribute name. Names are compared ASCII
// case insensitively.
func (l AttrList) Lookup(name string) (AttrSpec, bool) {
	for _, a := range l {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return AttrSpec{}, false
}

// Merge returns the union of l and other. A spec in other replaces the spec
// with the same name in l but keeps its position.
func (l AttrList) Merge(other AttrList) AttrList {
	merged := make(AttrList, 0, len(l)+len(other))
	merged = append(merged, l...)
	for _, a := range other {
		replaced := false
		for i := range merged {
			if strings.EqualFold(merged[i].Name, a.Name) {
				merged[i] = a
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, a)
		}
	}
	return merged
}

// Mandatory returns the specs carrying a Mandatory rule.
func (l AttrList) Mandatory() []AttrSpec {
	var out []AttrSpec
	for _, a := range l {
		if a.IsMandatory() {
			out = append(out, a)
		}
	}
	return out
}

func formatDouble(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
