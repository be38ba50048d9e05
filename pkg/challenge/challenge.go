// Package challenge parses WWW-Authenticate / Proxy-Authenticate header
// values into an ordered list of per-scheme Challenges, ready for scheme
// selection by pkg/auth.
package challenge

import (
	"fmt"
	"strings"

	"github.com/go-httpauth/engine/pkg/tokenize"
)

// Scheme tags a Challenge's authentication mechanism.
type Scheme int

const (
	// SchemeUnknown marks a scheme token this package does not recognise.
	SchemeUnknown Scheme = iota
	SchemeBasic
	SchemeDigest
	SchemeNegotiate
)

func (s Scheme) String() string {
	switch s {
	case SchemeBasic:
		return "Basic"
	case SchemeDigest:
		return "Digest"
	case SchemeNegotiate:
		return "GSS-Negotiate"
	default:
		return "Unknown"
	}
}

func schemeFromToken(tok string) Scheme {
	switch strings.ToLower(tok) {
	case "basic":
		return SchemeBasic
	case "digest":
		return SchemeDigest
	case "gss-negotiate", "negotiate":
		return SchemeNegotiate
	default:
		return SchemeUnknown
	}
}

// Algorithm is the Digest "algorithm" parameter.
type Algorithm int

const (
	AlgorithmUnknown Algorithm = iota
	AlgorithmMD5
	AlgorithmMD5Sess
)

func algorithmFromToken(tok string) Algorithm {
	switch strings.ToLower(tok) {
	case "md5":
		return AlgorithmMD5
	case "md5-sess":
		return AlgorithmMD5Sess
	default:
		return AlgorithmUnknown
	}
}

// Challenge is one parsed scheme entry from a challenge header value.
type Challenge struct {
	Scheme     Scheme
	Realm      string
	Nonce      string
	Opaque     string
	Stale      bool
	GotQop     bool
	QopAuth    bool
	QopAuthInt bool

	// GotAlgorithm reports whether an "algorithm" parameter was present
	// at all. RFC 2617 defaults algorithm to MD5 when it is absent, which
	// is a different outcome from an explicit but unrecognised value, so
	// callers must consult GotAlgorithm rather than treating the zero
	// value of Algorithm as "absent".
	GotAlgorithm bool
	Algorithm    Algorithm
}

// EffectiveAlgorithm returns the algorithm this challenge implies: MD5
// when none was specified, whatever was parsed otherwise.
func (c *Challenge) EffectiveAlgorithm() Algorithm {
	if !c.GotAlgorithm {
		return AlgorithmMD5
	}
	return c.Algorithm
}

// HasOpaque reports whether the challenge carried an opaque parameter.
func (c *Challenge) HasOpaque() bool {
	return c.Opaque != ""
}

// Parse converts a complete challenge header value into an ordered list
// of Challenges. An unrecognised bare scheme token discards the whole
// list, per the grammar this parser is grounded on: a server emitting a
// scheme we cannot classify invalidates the rest of the header too,
// since we can no longer tell where its parameters end.
func Parse(header string) ([]*Challenge, error) {
	cur := tokenize.NewCursor(header, true)

	var out []*Challenge
	var current *Challenge

	for {
		kind, key, value := cur.Next()
		switch kind {
		case tokenize.End:
			return out, nil

		case tokenize.Fail:
			if len(out) == 0 {
				return nil, fmt.Errorf("challenge: unable to parse %q", header)
			}
			return out, nil

		case tokenize.Scheme:
			scheme := schemeFromToken(key)
			if scheme == SchemeUnknown {
				return nil, nil
			}
			current = &Challenge{Scheme: scheme}
			out = append(out, current)

		case tokenize.Pair:
			if current == nil {
				return nil, fmt.Errorf("challenge: parameter %q before any scheme", key)
			}
			applyParam(current, key, value)
		}
	}
}

func applyParam(c *Challenge, key, value string) {
	switch strings.ToLower(key) {
	case "realm":
		c.Realm = value
	case "nonce":
		c.Nonce = value
	case "opaque":
		c.Opaque = value
	case "stale":
		c.Stale = strings.EqualFold(value, "true")
	case "algorithm":
		c.GotAlgorithm = true
		c.Algorithm = algorithmFromToken(value)
	case "qop":
		c.GotQop = true
		for _, tok := range tokenize.SplitCSV(value) {
			switch strings.ToLower(tok) {
			case "auth":
				c.QopAuth = true
			case "auth-int":
				c.QopAuthInt = true
			}
		}
	}
}
