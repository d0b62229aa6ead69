package spec

// RuleCandidate is one alternative rule for a tag name.
type RuleCandidate struct {
	Tag   TagSpec    `json:"tag"`
	Attrs AttrList   `json:"attrs"`
	Cdata *CdataSpec `json:"cdata,omitempty"`
}

// MergeCandidates folds candidates left to right: tag specs merge field by
// field with later values winning, attribute lists are unioned with later
// specs replacing earlier ones of the same name, and the last non-nil CDATA
// spec wins. The merged tag spec is not re-checked for consistency.
func MergeCandidates(candidates []RuleCandidate) RuleCandidate {
	var merged RuleCandidate
	for i, c := range candidates {
		if i == 0 {
			merged = RuleCandidate{Tag: c.Tag, Attrs: append(AttrList(nil), c.Attrs...), Cdata: c.Cdata}
			continue
		}
		merged.Tag = MergeTagSpecs(merged.Tag, c.Tag)
		merged.Attrs = merged.Attrs.Merge(c.Attrs)
		if c.Cdata != nil {
			merged.Cdata = c.Cdata
		}
	}
	return merged
}

// Table is the specification table the sanitizer validates against.
type Table struct {
	Tags        map[string][]RuleCandidate
	GlobalAttrs AttrList
	LayoutAttrs AttrList
}

// Candidates returns the rule candidates for a lowercase tag name.
func (t *Table) Candidates(tagName string) ([]RuleCandidate, bool) {
	c, ok := t.Tags[tagName]
	return c, ok && len(c) > 0
}

// Add appends candidates, keyed by their tag name.
func (t *Table) Add(candidates ...RuleCandidate) {
	if t.Tags == nil {
		t.Tags = make(map[string][]RuleCandidate)
	}
	for _, c := range candidates {
		t.Tags[c.Tag.TagName] = append(t.Tags[c.Tag.TagName], c)
	}
}
