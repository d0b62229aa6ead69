package sanitizer

import (
	"strings"

	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"golang.org/x/net/html"
)

// Score rates how well attrs match the attribute list of candidate.
//
//   - +2 for a present attribute the candidate places no constraint on
//   - +2 for a present attribute the candidate constrains
//   - +2 for a satisfied mandatory attribute, 0 overall when missing
//   - +2 for a satisfied value or value_casei rule, 0 overall when violated
//
// A candidate without mandatory attributes scores at least 1, since its
// unmatched attributes can be stripped later. Score is a pure function.
func Score(attrs []html.Attribute, candidate spec.RuleCandidate) int {
	values := make(map[string]string, len(attrs))
	for _, a := range attrs {
		values[strings.ToLower(a.Key)] = a.Val
	}

	score := 0
	for _, as := range candidate.Attrs {
		value, present := values[strings.ToLower(as.Name)]
		if len(as.Rules) == 0 {
			if present {
				score += 2
			}
			continue
		}
		if present {
			score += 2
		}
		if as.IsMandatory() {
			if !anyPresent(values, as.Names()) {
				return 0
			}
			score += 2
		}
		if !present {
			continue
		}
		if v, ok := spec.Find[spec.Value](as.Rules); ok {
			if !valueMatches(v, as.Name, value) {
				return 0
			}
			score += 2
		}
		if v, ok := spec.Find[spec.ValueCasei](as.Rules); ok {
			if !strings.EqualFold(string(v), value) {
				return 0
			}
			score += 2
		}
	}

	if score == 0 && len(candidate.Attrs.Mandatory()) == 0 {
		return 1
	}
	return score
}

// SelectCandidate picks the rule for an element among structurally valid
// candidates. A single candidate is used as is. Otherwise the candidates
// with the best non-zero score win, merged when tied. It reports false
// when every candidate scores 0.
func SelectCandidate(attrs []html.Attribute, candidates []spec.RuleCandidate) (spec.RuleCandidate, bool) {
	switch len(candidates) {
	case 0:
		return spec.RuleCandidate{}, false
	case 1:
		return candidates[0], true
	}

	best := 0
	var top []spec.RuleCandidate
	for _, c := range candidates {
		s := Score(attrs, c)
		switch {
		case s == 0 || s < best:
		case s > best:
			best = s
			top = []spec.RuleCandidate{c}
		default:
			top = append(top, c)
		}
	}

	switch len(top) {
	case 0:
		return spec.RuleCandidate{}, false
	case 1:
		return top[0], true
	default:
		return spec.MergeCandidates(top), true
	}
}

func anyPresent(values map[string]string, names []string) bool {
	for _, n := range names {
		if _, ok := values[strings.ToLower(n)]; ok {
			return true
		}
	}
	return false
}

// valueMatches compares against an exact value. An empty expected value
// accepts the attribute name too, the boolean attribute form.
func valueMatches(expected spec.Value, name, value string) bool {
	if string(expected) == value {
		return true
	}
	return expected == "" && strings.EqualFold(value, name)
}
