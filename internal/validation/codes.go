package validation

// Code identifies the kind of a validation error.
type Code string

// structural placement
const (
	CodeWrongParentTag        Code = "WRONG_PARENT_TAG"
	CodeDisallowedTagAncestor Code = "DISALLOWED_TAG_ANCESTOR"
	CodeMandatoryTagAncestor  Code = "MANDATORY_TAG_ANCESTOR"
)

// child shape
const (
	CodeDisallowedFirstChildTag  Code = "DISALLOWED_FIRST_CHILD_TAG"
	CodeDisallowedChildTag       Code = "DISALLOWED_CHILD_TAG"
	CodeIncorrectNumChildTags    Code = "INCORRECT_NUM_CHILD_TAGS"
	CodeIncorrectMinNumChildTags Code = "INCORRECT_MIN_NUM_CHILD_TAGS"
)

// tag admissibility
const (
	CodeDisallowedTag                   Code = "DISALLOWED_TAG"
	CodeDuplicateUniqueTag              Code = "DUPLICATE_UNIQUE_TAG"
	CodeDisallowedProcessingInstruction Code = "DISALLOWED_PROCESSING_INSTRUCTION"
)

// attribute admissibility
const (
	CodeDisallowedAttr            Code = "DISALLOWED_ATTR"
	CodeAttrRequiredButMissing    Code = "ATTR_REQUIRED_BUT_MISSING"
	CodeMandatoryAnyofAttrMissing Code = "MANDATORY_ANYOF_ATTR_MISSING"
	CodeMandatoryOneofAttrMissing Code = "MANDATORY_ONEOF_ATTR_MISSING"
	CodeDuplicateOneofAttrs       Code = "DUPLICATE_ONEOF_ATTRS"
)

// attribute value
const (
	CodeInvalidAttrValue           Code = "INVALID_ATTR_VALUE"
	CodeInvalidAttrValueCasei      Code = "INVALID_ATTR_VALUE_CASEI"
	CodeInvalidAttrValueRegex      Code = "INVALID_ATTR_VALUE_REGEX"
	CodeInvalidAttrValueRegexCasei Code = "INVALID_ATTR_VALUE_REGEX_CASEI"
	CodeInvalidURL                 Code = "INVALID_URL"
	CodeInvalidURLProtocol         Code = "INVALID_URL_PROTOCOL"
	CodeDisallowedRelativeURL      Code = "DISALLOWED_RELATIVE_URL"
	CodeMissingURL                 Code = "MISSING_URL"
	CodeDisallowedDomain           Code = "DISALLOWED_DOMAIN"
	CodeDuplicateDimensions        Code = "DUPLICATE_DIMENSIONS"
)

// composite property attributes
const (
	CodeDisallowedPropertyInAttrValue Code = "DISALLOWED_PROPERTY_IN_ATTR_VALUE"
	CodeMissingMandatoryProperty      Code = "MISSING_MANDATORY_PROPERTY"
	CodeMissingRequiredPropertyValue  Code = "MISSING_REQUIRED_PROPERTY_VALUE"
)

// layout
const (
	CodeInvalidLayoutWidth          Code = "INVALID_LAYOUT_WIDTH"
	CodeInvalidLayoutHeight         Code = "INVALID_LAYOUT_HEIGHT"
	CodeInvalidLayoutHeights        Code = "INVALID_LAYOUT_HEIGHTS"
	CodeInvalidLayoutUnitDimensions Code = "INVALID_LAYOUT_UNIT_DIMENSIONS"
	CodeInvalidLayoutNoHeight       Code = "INVALID_LAYOUT_NO_HEIGHT"
	CodeInvalidLayoutNoWidth        Code = "INVALID_LAYOUT_NO_WIDTH"
	CodeInvalidLayoutAutoHeight     Code = "INVALID_LAYOUT_AUTO_HEIGHT"
	CodeInvalidLayoutAutoWidth      Code = "INVALID_LAYOUT_AUTO_WIDTH"
	CodeInvalidLayoutFixedHeight    Code = "INVALID_LAYOUT_FIXED_HEIGHT"
	CodeSpecifiedLayoutInvalid      Code = "SPECIFIED_LAYOUT_INVALID"
	CodeImpliedLayoutInvalid        Code = "IMPLIED_LAYOUT_INVALID"
	CodeMissingLayoutAttributes     Code = "MISSING_LAYOUT_ATTRIBUTES"
)

// cdata
const (
	CodeCdataTooLong                     Code = "CDATA_TOO_LONG"
	CodeCdataViolatesDenylist            Code = "CDATA_VIOLATES_DENYLIST"
	CodeMandatoryCdataMissingOrIncorrect Code = "MANDATORY_CDATA_MISSING_OR_INCORRECT"
	CodeJSONErrorEmpty                   Code = "JSON_ERROR_EMPTY"
	CodeJSONErrorSyntax                  Code = "JSON_ERROR_SYNTAX"
	CodeJSONErrorCtrlChar                Code = "JSON_ERROR_CTRL_CHAR"
	CodeJSONErrorUTF8                    Code = "JSON_ERROR_UTF8"
	CodeJSONErrorDepth                   Code = "JSON_ERROR_DEPTH"
)

// IsLayout reports whether c is produced by the layout validator.
func (c Code) IsLayout() bool {
	switch c {
	case CodeInvalidLayoutWidth, CodeInvalidLayoutHeight, CodeInvalidLayoutHeights,
		CodeInvalidLayoutUnitDimensions, CodeInvalidLayoutNoHeight, CodeInvalidLayoutNoWidth,
		CodeInvalidLayoutAutoHeight, CodeInvalidLayoutAutoWidth, CodeInvalidLayoutFixedHeight,
		CodeSpecifiedLayoutInvalid, CodeImpliedLayoutInvalid, CodeMissingLayoutAttributes:
		return true
	}
	return false
}

// IsCdata reports whether c is produced by CDATA validation.
func (c Code) IsCdata() bool {
	switch c {
	case CodeCdataTooLong, CodeCdataViolatesDenylist, CodeMandatoryCdataMissingOrIncorrect,
		CodeJSONErrorEmpty, CodeJSONErrorSyntax, CodeJSONErrorCtrlChar,
		CodeJSONErrorUTF8, CodeJSONErrorDepth:
		return true
	}
	return false
}

var knownCodes = func() map[Code]struct{} {
	all := []Code{
		CodeWrongParentTag, CodeDisallowedTagAncestor, CodeMandatoryTagAncestor,
		CodeDisallowedFirstChildTag, CodeDisallowedChildTag, CodeIncorrectNumChildTags, CodeIncorrectMinNumChildTags,
		CodeDisallowedTag, CodeDuplicateUniqueTag, CodeDisallowedProcessingInstruction,
		CodeDisallowedAttr, CodeAttrRequiredButMissing, CodeMandatoryAnyofAttrMissing,
		CodeMandatoryOneofAttrMissing, CodeDuplicateOneofAttrs,
		CodeInvalidAttrValue, CodeInvalidAttrValueCasei, CodeInvalidAttrValueRegex, CodeInvalidAttrValueRegexCasei,
		CodeInvalidURL, CodeInvalidURLProtocol, CodeDisallowedRelativeURL, CodeMissingURL,
		CodeDisallowedDomain, CodeDuplicateDimensions,
		CodeDisallowedPropertyInAttrValue, CodeMissingMandatoryProperty, CodeMissingRequiredPropertyValue,
		CodeInvalidLayoutWidth, CodeInvalidLayoutHeight, CodeInvalidLayoutHeights,
		CodeInvalidLayoutUnitDimensions, CodeInvalidLayoutNoHeight, CodeInvalidLayoutNoWidth,
		CodeInvalidLayoutAutoHeight, CodeInvalidLayoutAutoWidth, CodeInvalidLayoutFixedHeight,
		CodeSpecifiedLayoutInvalid, CodeImpliedLayoutInvalid, CodeMissingLayoutAttributes,
		CodeCdataTooLong, CodeCdataViolatesDenylist, CodeMandatoryCdataMissingOrIncorrect,
		CodeJSONErrorEmpty, CodeJSONErrorSyntax, CodeJSONErrorCtrlChar, CodeJSONErrorUTF8, CodeJSONErrorDepth,
	}
	m := make(map[Code]struct{}, len(all))
	for _, c := range all {
		m[c] = struct{}{}
	}
	return m
}()

// ParseCode looks up a code by its name, e.g. "DISALLOWED_ATTR".
func ParseCode(name string) (Code, bool) {
	c := Code(name)
	_, ok := knownCodes[c]
	return c, ok
}
