package layout

import (
	"regexp"
	"strconv"
	"strings"
)

var lengthPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(px|em|rem|vh|vw|vmin|vmax|%)?$`)

// CSSLength is a parsed width or height attribute.
type CSSLength struct {
	numeral float64
	unit    string
	isAuto  bool
	isFluid bool
	isSet   bool
	isValid bool
}

// ParseCSSLength parses a width or height attribute value. A missing
// attribute (present == false) is a valid, unset length. "auto" is only
// valid when allowAuto is set, "fluid" only when allowFluid is set. Unit
// defaults to px.
func ParseCSSLength(raw string, present bool, allowAuto bool, allowFluid bool) CSSLength {
	if !present {
		return CSSLength{isValid: true, unit: "px"}
	}
	l := CSSLength{isSet: true, unit: "px"}
	value := strings.TrimSpace(raw)
	switch value {
	case "auto":
		l.isAuto = true
		l.isValid = allowAuto
		return l
	case "fluid":
		l.isFluid = true
		l.isValid = allowFluid
		return l
	}
	m := lengthPattern.FindStringSubmatch(value)
	if m == nil {
		return l
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return l
	}
	l.numeral = n
	if m[2] != "" {
		l.unit = m[2]
	}
	l.isValid = true
	return l
}

// defaultLength is the synthetic 1px length used for tags that define a
// default dimension.
func defaultLength() CSSLength {
	return CSSLength{numeral: 1, unit: "px", isSet: true, isValid: true}
}

func (l CSSLength) Numeral() float64 { return l.numeral }
func (l CSSLength) Unit() string      { return l.unit }
func (l CSSLength) IsAuto() bool      { return l.isAuto }
func (l CSSLength) IsFluid() bool     { return l.isFluid }
func (l CSSLength) IsSet() bool       { return l.isSet }
func (l CSSLength) IsValid() bool     { return l.isValid }
