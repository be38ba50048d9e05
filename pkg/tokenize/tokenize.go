// Package tokenize splits an HTTP challenge/credentials header value into
// key=value pairs (and, for challenge headers, bare scheme tokens),
// mirroring the pointer-walking state machine used by RFC 2617 header
// parsers: skip whitespace, read a token, then either a quoted-string or
// bare-token value, separated by commas.
package tokenize

import "strings"

// Kind identifies what a single call to Next produced.
type Kind int

const (
	// End means the cursor is exhausted; there is nothing more to read.
	End Kind = iota
	// Fail means the remaining input could not be tokenized.
	Fail
	// Pair means a key=value pair was read.
	Pair
	// Scheme means a bare token (no following '=') was read; only
	// produced when the Cursor was created with IsChallenge = true.
	Scheme
)

// Cursor walks a header value, one token at a time.
type Cursor struct {
	s           string
	pos         int
	IsChallenge bool
}

// NewCursor returns a Cursor positioned at the start of s. When
// isChallenge is true, a bare token with no following '=' is reported as
// Scheme rather than Fail.
func NewCursor(s string, isChallenge bool) *Cursor {
	return &Cursor{s: s, IsChallenge: isChallenge}
}

func (c *Cursor) skipSpace() {
	for c.pos < len(c.s) && (c.s[c.pos] == ' ' || c.s[c.pos] == '\t') {
		c.pos++
	}
}

func isTokenChar(b byte) bool {
	switch b {
	case '=', ',', ' ', '\t':
		return false
	default:
		return true
	}
}

func (c *Cursor) readToken() string {
	start := c.pos
	for c.pos < len(c.s) && isTokenChar(c.s[c.pos]) {
		c.pos++
	}
	return c.s[start:c.pos]
}

// Next reads the next token. On Pair, key and value hold the pair read.
// On Scheme, key holds the bare token and value is empty. On End and
// Fail, both are empty.
func (c *Cursor) Next() (kind Kind, key string, value string) {
	c.skipSpace()
	if c.pos >= len(c.s) {
		return End, "", ""
	}

	key = c.readToken()
	if key == "" {
		return Fail, "", ""
	}

	c.skipSpace()

	if c.pos >= len(c.s) || c.s[c.pos] != '=' {
		// no '=' follows: either a bare scheme token, or a syntax error
		if c.pos < len(c.s) && c.s[c.pos] == ',' {
			c.pos++
		}
		if c.IsChallenge {
			return Scheme, key, ""
		}
		return Fail, "", ""
	}
	c.pos++ // consume '='
	c.skipSpace()

	if c.pos < len(c.s) && c.s[c.pos] == '"' {
		val, ok := c.readQuoted()
		if !ok {
			return Fail, "", ""
		}
		value = val
	} else {
		value = c.readToken()
	}

	c.skipSpace()
	if c.pos < len(c.s) {
		if c.s[c.pos] != ',' {
			return Fail, "", ""
		}
		c.pos++
	}

	return Pair, key, value
}

// readQuoted reads a double-quoted string starting at the opening quote.
// Backslash does not escape the following character; the string ends at
// the next '"', matching the tokenizer this grammar was
// distilled from.
func (c *Cursor) readQuoted() (string, bool) {
	c.pos++ // consume opening quote
	start := c.pos
	for c.pos < len(c.s) {
		if c.s[c.pos] == '"' {
			val := c.s[start:c.pos]
			c.pos++ // consume closing quote
			return val, true
		}
		c.pos++
	}
	return "", false
}

// SplitCSV splits a comma-separated list of trimmed tokens, discarding
// empty tokens. Used for qop="auth,auth-int".
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
