package sanitizer

import (
	"strings"

	"github.com/rohmanhakim/amp-sanitizer/internal/spec"
	"github.com/rohmanhakim/amp-sanitizer/internal/validation"
	"github.com/rohmanhakim/amp-sanitizer/pkg/urlutil"
)

// checkURLAttr validates every URL of a URL valued attribute. srcset
// values are split into candidates first. A repeated srcset descriptor is
// repaired by dropping the later candidates.
func (h *HtmlSanitizer) checkURLAttr(as spec.AttrSpec, value string, base validation.Error) []attrIssue {
	fail := func(code validation.Code, url string, decorate func(*validation.Error)) []attrIssue {
		verr := base
		verr.Code = code
		verr.URL = url
		if decorate != nil {
			decorate(&verr)
		}
		return []attrIssue{{name: base.Attr, err: verr}}
	}

	isSrcset := strings.EqualFold(base.Attr, "srcset")
	var urls []string
	var candidates []urlutil.SrcsetCandidate
	if isSrcset {
		parsed, err := urlutil.ParseSrcset(value)
		if err != nil {
			return fail(validation.CodeInvalidAttrValue, "", nil)
		}
		candidates = parsed
		for _, c := range candidates {
			urls = append(urls, c.URL)
		}
	} else if trimmed := strings.TrimSpace(value); trimmed != "" {
		urls = []string{trimmed}
	}

	allowEmpty, _ := spec.Find[spec.AllowEmpty](as.Rules)
	if len(urls) == 0 {
		if allowEmpty {
			return nil
		}
		return fail(validation.CodeMissingURL, "", nil)
	}

	protocols, hasProtocols := spec.Find[spec.AllowedProtocol](as.Rules)
	allowRelative, hasRelativeRule := spec.Find[spec.AllowRelative](as.Rules)
	domain, hasDomain := spec.Find[spec.DisallowedDomain](as.Rules)

	for _, u := range urls {
		protocol := urlutil.Protocol(u)
		if protocol != "" && hasProtocols && !containsFold(protocols, urlutil.NormalizeProtocol(protocol)) {
			return fail(validation.CodeInvalidURLProtocol, u, func(e *validation.Error) { e.Protocol = protocol })
		}
		if err := urlutil.Validate(u); err != nil {
			return fail(validation.CodeInvalidURL, u, nil)
		}
		if protocol == "" && hasRelativeRule && !bool(allowRelative) {
			return fail(validation.CodeDisallowedRelativeURL, u, nil)
		}
		if hasDomain && urlutil.MatchesDomain(urlutil.Host(u), string(domain)) {
			return fail(validation.CodeDisallowedDomain, u, func(e *validation.Error) { e.Domain = string(domain) })
		}
	}

	if isSrcset {
		if dup, ok := firstDuplicateDescriptor(candidates); ok {
			verr := base
			verr.Code = validation.CodeDuplicateDimensions
			verr.Dimension = dup
			return []attrIssue{{name: base.Attr, err: verr, fix: dropDuplicateDescriptors}}
		}
	}
	return nil
}

func firstDuplicateDescriptor(candidates []urlutil.SrcsetCandidate) (string, bool) {
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.Descriptor]; ok {
			return c.Descriptor, true
		}
		seen[c.Descriptor] = struct{}{}
	}
	return "", false
}

// dropDuplicateDescriptors keeps the first candidate per descriptor.
func dropDuplicateDescriptors(current string) string {
	candidates, err := urlutil.ParseSrcset(current)
	if err != nil {
		return current
	}
	seen := make(map[string]struct{}, len(candidates))
	kept := candidates[:0]
	for _, c := range candidates {
		if _, ok := seen[c.Descriptor]; ok {
			continue
		}
		seen[c.Descriptor] = struct{}{}
		kept = append(kept, c)
	}
	return urlutil.JoinSrcset(kept)
}
