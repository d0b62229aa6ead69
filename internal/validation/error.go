package validation

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/net/html"
)

// Error is a structured validation error. It is a record handed to the
// decision callback, never a Go error flowing up the stack.
type Error struct {
	Code     Code       `json:"code"`
	Node     *html.Node `json:"-"`
	NodeName string     `json:"node_name,omitempty"`

	// attribute context
	Attr      string `json:"attr,omitempty"`
	AttrValue string `json:"attr_value,omitempty"`

	// rule context
	SpecName  string   `json:"spec_name,omitempty"`
	SpecNames []string `json:"spec_names,omitempty"`

	// structural context
	ParentName           string   `json:"parent_name,omitempty"`
	RequiredParentName   string   `json:"required_parent_name,omitempty"`
	RequiredAncestorName string   `json:"required_ancestor_name,omitempty"`
	DisallowedAncestor   string   `json:"disallowed_ancestor,omitempty"`
	ChildTag             string   `json:"child_tag,omitempty"`
	AllowedTags          []string `json:"allowed_tags,omitempty"`
	ChildrenCount        int      `json:"children_count,omitempty"`
	RequiredChildCount   int      `json:"required_child_count,omitempty"`

	// attribute groups (any-of / one-of)
	Attributes []string `json:"attributes,omitempty"`

	// value properties
	PropertyName  string `json:"property_name,omitempty"`
	PropertyValue string `json:"property_value,omitempty"`
	RequiredValue string `json:"required_value,omitempty"`

	// url context
	URL      string `json:"url,omitempty"`
	Protocol string `json:"protocol,omitempty"`
	Domain   string `json:"domain,omitempty"`

	Layout     string `json:"layout,omitempty"`
	Dimension  string `json:"dimension,omitempty"`
	CdataIssue string `json:"cdata_issue,omitempty"`
}

// Message renders a human readable description of the error.
func (e Error) Message() string {
	tag := e.tagLabel()
	switch e.Code {
	case CodeWrongParentTag:
		return fmt.Sprintf("The parent tag of tag '%s' is '%s', but it can only be '%s'.", tag, e.ParentName, e.RequiredParentName)
	case CodeDisallowedTagAncestor:
		return fmt.Sprintf("The tag '%s' may not appear as a descendant of tag '%s'.", tag, e.DisallowedAncestor)
	case CodeMandatoryTagAncestor:
		return fmt.Sprintf("The tag '%s' may only appear as a descendant of tag '%s'.", tag, e.RequiredAncestorName)
	case CodeDisallowedFirstChildTag:
		return fmt.Sprintf("Tag '%s' is disallowed as first child of tag '%s'. First child tag must be one of %s.", e.ChildTag, tag, quoteList(e.AllowedTags))
	case CodeDisallowedChildTag:
		return fmt.Sprintf("Tag '%s' is disallowed as child of tag '%s'. Child tag must be one of %s.", e.ChildTag, tag, quoteList(e.AllowedTags))
	case CodeIncorrectNumChildTags:
		return fmt.Sprintf("Tag '%s' must have %d child tags - saw %d child tags.", tag, e.RequiredChildCount, e.ChildrenCount)
	case CodeIncorrectMinNumChildTags:
		return fmt.Sprintf("Tag '%s' must have a minimum of %d child tags - saw %d child tags.", tag, e.RequiredChildCount, e.ChildrenCount)
	case CodeDisallowedTag:
		return fmt.Sprintf("The tag '%s' is disallowed.", tag)
	case CodeDuplicateUniqueTag:
		return fmt.Sprintf("The tag '%s' appears more than once in the document.", tag)
	case CodeDisallowedProcessingInstruction:
		return "Processing instructions are disallowed."
	case CodeDisallowedAttr:
		return fmt.Sprintf("The attribute '%s' may not appear in tag '%s'.", e.Attr, tag)
	case CodeAttrRequiredButMissing:
		return fmt.Sprintf("The mandatory attribute '%s' is missing in tag '%s'.", e.Attr, tag)
	case CodeMandatoryAnyofAttrMissing:
		return fmt.Sprintf("The tag '%s' is missing a mandatory attribute - pick at least one of %s.", tag, quoteList(e.Attributes))
	case CodeMandatoryOneofAttrMissing:
		return fmt.Sprintf("The tag '%s' is missing a mandatory attribute - pick one of %s.", tag, quoteList(e.Attributes))
	case CodeDuplicateOneofAttrs:
		return fmt.Sprintf("Mutually exclusive attributes encountered in tag '%s' - pick one of %s.", tag, quoteList(e.Attributes))
	case CodeInvalidAttrValue, CodeInvalidAttrValueCasei, CodeInvalidAttrValueRegex, CodeInvalidAttrValueRegexCasei:
		return fmt.Sprintf("The attribute '%s' in tag '%s' is set to the invalid value '%s'.", e.Attr, tag, e.AttrValue)
	case CodeInvalidURL:
		return fmt.Sprintf("Malformed URL '%s' for attribute '%s' in tag '%s'.", e.URL, e.Attr, tag)
	case CodeInvalidURLProtocol:
		return fmt.Sprintf("Invalid URL protocol '%s:' for attribute '%s' in tag '%s'.", e.Protocol, e.Attr, tag)
	case CodeDisallowedRelativeURL:
		return fmt.Sprintf("The relative URL '%s' for attribute '%s' in tag '%s' is disallowed.", e.URL, e.Attr, tag)
	case CodeMissingURL:
		return fmt.Sprintf("Missing URL for attribute '%s' in tag '%s'.", e.Attr, tag)
	case CodeDisallowedDomain:
		return fmt.Sprintf("The attribute '%s' in tag '%s' contains a URL on the disallowed domain '%s'.", e.Attr, tag, e.Domain)
	case CodeDuplicateDimensions:
		return fmt.Sprintf("Multiple image candidates with the same width or pixel density '%s' found in attribute '%s' in tag '%s'.", e.Dimension, e.Attr, tag)
	case CodeDisallowedPropertyInAttrValue:
		return fmt.Sprintf("The property '%s' in attribute '%s' in tag '%s' is disallowed.", e.PropertyName, e.Attr, tag)
	case CodeMissingMandatoryProperty:
		return fmt.Sprintf("The property '%s' is missing from attribute '%s' in tag '%s'.", e.PropertyName, e.Attr, tag)
	case CodeMissingRequiredPropertyValue:
		return fmt.Sprintf("The property '%s' in attribute '%s' in tag '%s' is set to '%s', which is invalid. The only allowed value is '%s'.", e.PropertyName, e.Attr, tag, e.PropertyValue, e.RequiredValue)
	case CodeInvalidLayoutWidth:
		return fmt.Sprintf("Invalid value '%s' for attribute 'width' in tag '%s'.", e.AttrValue, tag)
	case CodeInvalidLayoutHeight:
		return fmt.Sprintf("Invalid value '%s' for attribute 'height' in tag '%s'.", e.AttrValue, tag)
	case CodeInvalidLayoutHeights:
		return fmt.Sprintf("The attribute 'heights' in tag '%s' is disallowed with layout '%s'.", tag, e.Layout)
	case CodeInvalidLayoutUnitDimensions:
		return fmt.Sprintf("Inconsistent units for width and height in tag '%s' - width is specified in '%s' whereas height is specified in '%s'.", tag, e.Dimension, e.AttrValue)
	case CodeInvalidLayoutNoHeight:
		return fmt.Sprintf("The attribute 'height' in tag '%s' is missing, which is required for layout '%s'.", tag, e.Layout)
	case CodeInvalidLayoutNoWidth:
		return fmt.Sprintf("The attribute 'width' in tag '%s' is missing, which is required for layout '%s'.", tag, e.Layout)
	case CodeInvalidLayoutAutoHeight:
		return fmt.Sprintf("The attribute 'height' in tag '%s' is set to 'auto', which is only allowed for layout 'flex-item', not '%s'.", tag, e.Layout)
	case CodeInvalidLayoutAutoWidth:
		return fmt.Sprintf("The attribute 'width' in tag '%s' is set to 'auto', which is disallowed for layout '%s'.", tag, e.Layout)
	case CodeInvalidLayoutFixedHeight:
		return fmt.Sprintf("The attribute 'width' in tag '%s' is set to '%s', but layout 'fixed-height' requires it to be absent or 'auto'.", tag, e.AttrValue)
	case CodeSpecifiedLayoutInvalid:
		return fmt.Sprintf("The specified layout '%s' is not supported by tag '%s'.", e.Layout, tag)
	case CodeImpliedLayoutInvalid:
		return fmt.Sprintf("The implied layout '%s' is not supported by tag '%s'.", e.Layout, tag)
	case CodeMissingLayoutAttributes:
		return fmt.Sprintf("Incomplete layout attributes specified for tag '%s'. For example, provide attributes 'width' and 'height'.", tag)
	case CodeCdataTooLong:
		return fmt.Sprintf("The text inside tag '%s' is too long: %s.", tag, e.CdataIssue)
	case CodeCdataViolatesDenylist:
		return fmt.Sprintf("The text inside tag '%s' contains '%s', which is disallowed.", tag, e.CdataIssue)
	case CodeMandatoryCdataMissingOrIncorrect:
		return fmt.Sprintf("The mandatory text inside tag '%s' is missing or incorrect.", tag)
	case CodeJSONErrorEmpty, CodeJSONErrorSyntax, CodeJSONErrorCtrlChar, CodeJSONErrorUTF8, CodeJSONErrorDepth:
		return fmt.Sprintf("The script tag '%s' contains invalid JSON: %s.", tag, e.CdataIssue)
	}
	return fmt.Sprintf("Validation error %s in tag '%s'.", e.Code, tag)
}

// SameReason reports whether e and other describe the same failure,
// ignoring which rule candidate produced them.
func (e Error) SameReason(other Error) bool {
	a, b := e, other
	a.SpecName, b.SpecName = "", ""
	a.SpecNames, b.SpecNames = nil, nil
	a.Node, b.Node = nil, nil
	return reflect.DeepEqual(a, b)
}

// WithSpecNames returns a copy of e describing every candidate in names.
func (e Error) WithSpecNames(names []string) Error {
	e.SpecName = ""
	e.SpecNames = append([]string(nil), names...)
	return e
}

func (e Error) tagLabel() string {
	if e.SpecName != "" {
		return e.SpecName
	}
	if len(e.SpecNames) > 0 {
		return strings.Join(e.SpecNames, "' or '")
	}
	return e.NodeName
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + it + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
