package spec

// Rule is one constraint on an attribute. The set of variants is closed;
// evaluate rules with a type switch.
type Rule interface {
	isRule()
}

// Mandatory requires the attribute (or one of its alternative names) to
// be present.
type Mandatory struct{}

// Value requires an exact, case sensitive value. An empty Value also
// accepts the attribute's own name, so both amp="" and amp="amp" pass.
type Value string

// ValueCasei requires an exact value, compared ASCII case insensitively.
type ValueCasei string

// ValueRegex requires the whole value to match the pattern.
type ValueRegex string

// ValueRegexCasei is ValueRegex with case insensitive matching.
type ValueRegexCasei string

// AllowedProtocol lists the URL protocols the attribute may use.
type AllowedProtocol []string

// AllowRelative permits URLs without a protocol. URL attributes default to
// allowing relative URLs when the rule is absent.
type AllowRelative bool

// AllowEmpty permits an empty URL.
type AllowEmpty bool

// DisallowedDomain rejects URLs whose host is the domain or a subdomain.
type DisallowedDomain string

// DisallowedValueRegex rejects values that contain a match of the pattern.
type DisallowedValueRegex string

// ValueProperties treats the value as a list of key=value pairs.
type ValueProperties []PropertySpec

// PropertySpec constrains one key of a ValueProperties attribute.
type PropertySpec struct {
	Name      string `json:"name"`
	Mandatory bool   `json:"mandatory,omitempty"`
	// Value, when set, is the only accepted value (case insensitive).
	Value string `json:"value,omitempty"`
	// ValueDouble, when set, is the only accepted numeric value.
	ValueDouble *float64 `json:"value_double,omitempty"`
}

// RequiredValue returns the value a missing or wrong property can be
// rewritten to, if the spec pins one.
func (p PropertySpec) RequiredValue() (string, bool) {
	if p.Value != "" {
		return p.Value, true
	}
	if p.ValueDouble != nil {
		return formatDouble(*p.ValueDouble), true
	}
	return "", false
}

func (Mandatory) isRule()            {}
func (Value) isRule()                {}
func (ValueCasei) isRule()           {}
func (ValueRegex) isRule()           {}
func (ValueRegexCasei) isRule()      {}
func (AllowedProtocol) isRule()      {}
func (AllowRelative) isRule()        {}
func (AllowEmpty) isRule()           {}
func (DisallowedDomain) isRule()     {}
func (DisallowedValueRegex) isRule() {}
func (ValueProperties) isRule()      {}

// Find returns the first rule of type T in rules.
func Find[T Rule](rules []Rule) (T, bool) {
	for _, r := range rules {
		if v, ok := r.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Has reports whether rules contains a rule of type T.
func Has[T Rule](rules []Rule) bool {
	_, ok := Find[T](rules)
	return ok
}
