package spec

// ChildTags constrains the direct element children of a tag.
type ChildTags struct {
	FirstChildOneOf []string `json:"first_child_one_of,omitempty"`
	ChildOneOf      []string `json:"child_one_of,omitempty"`
	MandatoryNum    *int     `json:"mandatory_num,omitempty"`
	MandatoryMinNum *int     `json:"mandatory_min_num,omitempty"`
}

// Count is a helper for the optional child counts.
func Count(n int) *int {
	return &n
}

// CdataSpec constrains the text content of a tag.
type CdataSpec struct {
	// MaxBytes is the byte limit, zero means unlimited.
	MaxBytes        int               `json:"max_bytes,omitempty"`
	DisallowedRegex []DisallowedCdata `json:"disallowed_regex,omitempty"`
	// CdataRegex must match the whole text when set.
	CdataRegex string `json:"cdata_regex,omitempty"`
	// JSON requires the text to be a JSON document.
	JSON bool `json:"json,omitempty"`
}

type DisallowedCdata struct {
	Regex        string `json:"regex"`
	ErrorMessage string `json:"error_message"`
}

// TagSpec is the tag level part of a rule candidate.
type TagSpec struct {
	TagName  string `json:"tag_name"`
	SpecName string `json:"spec_name,omitempty"`
	// MandatoryParent is a tag name, optionally qualified with attribute
	// selectors such as template[type=amp-mustache].
	MandatoryParent     string      `json:"mandatory_parent,omitempty"`
	MandatoryAncestor   string      `json:"mandatory_ancestor,omitempty"`
	DisallowedAncestors []string    `json:"disallowed_ancestors,omitempty"`
	ChildTags           *ChildTags  `json:"child_tags,omitempty"`
	Unique              bool        `json:"unique,omitempty"`
	Layout              *LayoutSpec `json:"layout,omitempty"`
	RequiresExtension   []string    `json:"requires_extension,omitempty"`
	MandatoryAnyOf      []string    `json:"mandatory_anyof,omitempty"`
	MandatoryOneOf      []string    `json:"mandatory_oneof,omitempty"`
}

// Name is the human readable name used in messages.
func (t TagSpec) Name() string {
	if t.SpecName != "" {
		return t.SpecName
	}
	return t.TagName
}

// MergeTagSpecs merges b into a field by field. Every non-zero field of b
// overwrites the field of a.
func MergeTagSpecs(a, b TagSpec) TagSpec {
	out := a
	if b.TagName != "" {
		out.TagName = b.TagName
	}
	if b.SpecName != "" {
		out.SpecName = b.SpecName
	}
	if b.MandatoryParent != "" {
		out.MandatoryParent = b.MandatoryParent
	}
	if b.MandatoryAncestor != "" {
		out.MandatoryAncestor = b.MandatoryAncestor
	}
	if len(b.DisallowedAncestors) > 0 {
		out.DisallowedAncestors = b.DisallowedAncestors
	}
	if b.ChildTags != nil {
		out.ChildTags = b.ChildTags
	}
	if b.Unique {
		out.Unique = true
	}
	if b.Layout != nil {
		out.Layout = b.Layout
	}
	if len(b.RequiresExtension) > 0 {
		out.RequiresExtension = b.RequiresExtension
	}
	if len(b.MandatoryAnyOf) > 0 {
		out.MandatoryAnyOf = b.MandatoryAnyOf
	}
	if len(b.MandatoryOneOf) > 0 {
		out.MandatoryOneOf = b.MandatoryOneOf
	}
	return out
}
