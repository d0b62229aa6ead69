package sanitizer

import (
	"strconv"
	"strings"

	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
)

type property struct {
	key   string
	value string
}

// parseProperties splits "a=1, b=2; c" into ordered pairs. Keys are
// lowercased. Pairs with an empty key are dropped.
func parseProperties(value string) []property {
	var out []property
	for _, part := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' }) {
		key, val, _ := strings.Cut(part, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		out = append(out, property{key: key, value: strings.TrimSpace(val)})
	}
	return out
}

func serializeProperties(props []property) string {
	parts := make([]string, len(props))
	for i, p := range props {
		parts[i] = p.key + "=" + p.value
	}
	return strings.Join(parts, ",")
}

// checkProperties reports one issue per offending property. Each issue
// rewrites just its own property, so the attribute survives. A missing
// mandatory property without a pinned value removes the attribute.
func checkProperties(props spec.ValueProperties, value string, base validation.Error) []attrIssue {
	specs := make(map[string]spec.PropertySpec, len(props))
	for _, p := range props {
		specs[strings.ToLower(p.Name)] = p
	}

	var issues []attrIssue
	present := make(map[string]struct{})
	for _, p := range parseProperties(value) {
		present[p.key] = struct{}{}
		ps, ok := specs[p.key]
		if !ok {
			verr := base
			verr.Code = validation.CodeDisallowedPropertyInAttrValue
			verr.PropertyName = p.key
			verr.PropertyValue = p.value
			issues = append(issues, attrIssue{name: base.Attr, err: verr, fix: dropProperty(p.key)})
			continue
		}
		if required, pinned := ps.RequiredValue(); pinned && !propertyValueMatches(ps, p.value) {
			verr := base
			verr.Code = validation.CodeMissingRequiredPropertyValue
			verr.PropertyName = p.key
			verr.PropertyValue = p.value
			verr.RequiredValue = required
			issues = append(issues, attrIssue{name: base.Attr, err: verr, fix: setProperty(p.key, required)})
		}
	}

	for _, ps := range props {
		key := strings.ToLower(ps.Name)
		if !ps.Mandatory {
			continue
		}
		if _, ok := present[key]; ok {
			continue
		}
		verr := base
		verr.Code = validation.CodeMissingMandatoryProperty
		verr.PropertyName = key
		if required, pinned := ps.RequiredValue(); pinned {
			verr.RequiredValue = required
			issues = append(issues, attrIssue{name: base.Attr, err: verr, fix: setProperty(key, required)})
			continue
		}
		issues = append(issues, attrIssue{name: base.Attr, err: verr})
	}
	return issues
}

func propertyValueMatches(ps spec.PropertySpec, value string) bool {
	if ps.ValueDouble != nil {
		f, err := strconv.ParseFloat(value, 64)
		return err == nil && f == *ps.ValueDouble
	}
	return strings.EqualFold(ps.Value, value)
}

func dropProperty(key string) func(string) string {
	return func(current string) string {
		props := parseProperties(current)
		kept := props[:0]
		for _, p := range props {
			if p.key != key {
				kept = append(kept, p)
			}
		}
		return serializeProperties(kept)
	}
}

func setProperty(key, value string) func(string) string {
	return func(current string) string {
		props := parseProperties(current)
		for i := range props {
			if props[i].key == key {
				props[i].value = value
				return serializeProperties(props)
			}
		}
		return serializeProperties(append(props, property{key: key, value: value}))
	}
}
