package uri

import (
	"fmt"
	"strings"
)

func isUnreservedPathByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case strings.IndexByte("-_.~/", b) >= 0:
		return true
	}
	return false
}

// PathEscape percent-encodes every octet of s outside the unreserved set
// (plus '/', which is left alone since callers pass whole paths).
func PathEscape(s string) string {
	var needsEscape bool
	for i := 0; i < len(s); i++ {
		if !isUnreservedPathByte(s[i]) {
			needsEscape = true
			break
		}
	}
	if !needsEscape {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedPathByte(c) {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// PathUnescape reverses PathEscape and rejects malformed "%XX" sequences.
func PathUnescape(s string) (string, error) {
	if !strings.ContainsRune(s, '%') {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return "", fmt.Errorf("uri: truncated percent-escape in %q", s)
		}
		hi, ok1 := hexVal(s[i+1])
		lo, ok2 := hexVal(s[i+2])
		if !ok1 || !ok2 {
			return "", fmt.Errorf("uri: malformed percent-escape in %q", s)
		}
		b.WriteByte(hi<<4 | lo)
		i += 2
	}
	return b.String(), nil
}

// PathHasTrailingSlash reports whether p ends in '/'.
func PathHasTrailingSlash(p string) bool {
	return len(p) > 0 && p[len(p)-1] == '/'
}

// PathParent returns the prefix of p up to and including its last '/'
// that is not the final character, or "" with ok=false when no such
// prefix exists (p == "", p == "/", or p has no '/' other than a
// trailing one).
func PathParent(p string) (parent string, ok bool) {
	if p == "" || p == "/" {
		return "", false
	}

	search := p
	if PathHasTrailingSlash(p) {
		search = p[:len(p)-1]
	}

	idx := strings.LastIndexByte(search, '/')
	if idx < 0 {
		return "", false
	}
	return search[:idx+1], true
}

// PathChildOf reports whether child is a path strictly below parent,
// i.e. parent is a prefix of child up to a '/' boundary.
func PathChildOf(parent, child string) bool {
	if parent == "" || child == "" {
		return false
	}

	p := parent
	if !PathHasTrailingSlash(p) {
		p += "/"
	}

	if !strings.HasPrefix(child, p) {
		return false
	}
	return len(child) > len(p)
}

// PathCompare compares two paths after treating an empty path as "/".
func PathCompare(a, b string) int {
	return strings.Compare(normalizedPath(a), normalizedPath(b))
}
