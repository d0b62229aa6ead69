package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	ErrUnparseable     = errors.New("url cannot be parsed")
	ErrInvalidProtocol = errors.New("url protocol contains invalid characters")
	ErrInvalidHost     = errors.New("url host contains invalid characters")
)

var protocolPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*$`)

// reserved characters that may never appear in a host name
const invalidHostChars = " \t\n\r\f!\"#$%&'()*+,/:;<=>?@[\\]^`{|}~"

// Protocol returns the scheme prefix of raw: the text before the first ':'
// as long as no '/', '?' or '#' precedes it. It returns "" when raw carries
// no scheme. The result keeps its original case.
func Protocol(raw string) string {
	raw = strings.TrimSpace(raw)
	i := strings.IndexByte(raw, ':')
	if i <= 0 {
		return ""
	}
	if strings.ContainsAny(raw[:i], "/?#") {
		return ""
	}
	return raw[:i]
}

// IsRelative reports whether raw lacks a scheme.
//
// This is deliberately broader than the usual meaning: path-absolute
// ("/path") and protocol-relative ("//host/path") URLs both count as
// relative, matching how AMP validators apply allow_relative=false.
func IsRelative(raw string) bool {
	return Protocol(raw) == ""
}

// Validate checks that raw is parseable once percent-decoded, that its
// protocol (if any) is made of scheme characters, and that its host (if
// any) has no reserved characters.
func Validate(raw string) error {
	decoded := unescape(raw)
	if _, err := url.Parse(escapeStrayPercent(replaceControlChars(decoded))); err != nil {
		return fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	rest := decoded
	if protocol := Protocol(decoded); protocol != "" {
		if !protocolPattern.MatchString(protocol) {
			return fmt.Errorf("%w: %q", ErrInvalidProtocol, protocol)
		}
		rest = strings.TrimSpace(decoded)[len(protocol)+1:]
	}

	host := hostOf(rest)
	if host != "" && strings.ContainsAny(host, invalidHostChars) {
		return fmt.Errorf("%w: %q", ErrInvalidHost, host)
	}
	return nil
}

// Host returns the lowercased host name of raw, or "" when raw has none.
func Host(raw string) string {
	u, err := url.Parse(escapeStrayPercent(unescape(strings.TrimSpace(raw))))
	if err != nil {
		return ""
	}
	return lowerASCII(u.Hostname())
}

// MatchesDomain reports whether host is domain or one of its subdomains.
func MatchesDomain(host, domain string) bool {
	host = lowerASCII(strings.TrimSuffix(host, "."))
	domain = lowerASCII(strings.TrimSuffix(domain, "."))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// NormalizeProtocol lowercases a protocol for comparison against allow lists.
func NormalizeProtocol(protocol string) string {
	return lowerASCII(strings.TrimSpace(protocol))
}

// hostOf extracts the authority host from a scheme-less remainder such as
// "//user@host:8080/path". Inputs without an authority have no host.
func hostOf(rest string) string {
	if !strings.HasPrefix(rest, "//") {
		return ""
	}
	authority := rest[2:]
	if i := strings.IndexAny(authority, "/?#"); i >= 0 {
		authority = authority[:i]
	}
	if i := strings.LastIndexByte(authority, '@'); i >= 0 {
		authority = authority[i+1:]
	}
	if strings.HasPrefix(authority, "[") {
		// IPv6 literal
		if i := strings.IndexByte(authority, ']'); i >= 0 {
			return authority[1:i]
		}
		return authority
	}
	if i := strings.LastIndexByte(authority, ':'); i >= 0 {
		authority = authority[:i]
	}
	return authority
}

// unescape percent-decodes raw the lenient way: stray '%' signs that do not
// start a valid escape are kept literally.
func unescape(raw string) string {
	decoded, err := url.QueryUnescape(raw)
	if err == nil {
		return decoded
	}
	decoded, err = url.QueryUnescape(escapeStrayPercent(raw))
	if err != nil {
		return raw
	}
	return decoded
}

// replaceControlChars turns ASCII control characters into '_'. An encoded
// control character is legal in a URL, but url.Parse rejects it once
// decoded.
func replaceControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, s)
}

func escapeStrayPercent(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && !(i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// lowerASCII converts ASCII characters to lowercase without allocating.
// This is faster than strings.ToLower for ASCII-only strings.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
