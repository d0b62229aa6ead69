package urlutil

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidSrcset = errors.New("invalid srcset")

var descriptorPattern = regexp.MustCompile(`^(?:[1-9][0-9]*w|(?:[0-9]+(?:\.[0-9]+)?)x)$`)

// SrcsetCandidate is one image candidate of a srcset attribute.
type SrcsetCandidate struct {
	URL string
	// Descriptor is the width or density descriptor, "1x" when omitted.
	Descriptor string
	// Explicit is false when the descriptor was omitted.
	Explicit bool
}

func (c SrcsetCandidate) String() string {
	if !c.Explicit {
		return c.URL
	}
	return c.URL + " " + c.Descriptor
}

// ParseSrcset splits a srcset value into its candidates. Candidates are
// separated by commas; a URL may itself contain commas as long as it does
// not end with one.
func ParseSrcset(value string) ([]SrcsetCandidate, error) {
	var out []SrcsetCandidate
	s := value
	for {
		s = strings.TrimLeft(s, " \t\n\r\f,")
		if s == "" {
			return out, nil
		}

		end := strings.IndexAny(s, " \t\n\r\f")
		if end < 0 {
			end = len(s)
		}
		url := s[:end]
		s = s[end:]

		if trimmed := strings.TrimRight(url, ","); trimmed != url {
			out = append(out, SrcsetCandidate{URL: trimmed, Descriptor: "1x"})
			continue
		}

		s = strings.TrimLeft(s, " \t\n\r\f")
		descriptor := s
		next := ""
		if i := strings.IndexByte(s, ','); i >= 0 {
			descriptor, next = s[:i], s[i+1:]
		}
		descriptor = strings.TrimSpace(descriptor)
		s = next

		c := SrcsetCandidate{URL: url, Descriptor: "1x"}
		if descriptor != "" {
			if !descriptorPattern.MatchString(descriptor) {
				return nil, ErrInvalidSrcset
			}
			c.Descriptor = descriptor
			c.Explicit = true
		}
		out = append(out, c)
	}
}

// JoinSrcset serializes candidates back into a srcset value.
func JoinSrcset(candidates []SrcsetCandidate) string {
	parts := make([]string, len(candidates))
	for i, c := range candidates {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
