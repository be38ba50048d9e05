package tokenize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairsUnquoted(t *testing.T) {
	c := NewCursor("nc=00000001, algorithm=MD5", false)

	kind, k, v := c.Next()
	require.Equal(t, Pair, kind)
	require.Equal(t, "nc", k)
	require.Equal(t, "00000001", v)

	kind, k, v = c.Next()
	require.Equal(t, Pair, kind)
	require.Equal(t, "algorithm", k)
	require.Equal(t, "MD5", v)

	kind, _, _ = c.Next()
	require.Equal(t, End, kind)
}

func TestPairsQuoted(t *testing.T) {
	c := NewCursor(`realm="testrealm@host.com", nonce="abc,def"`, false)

	kind, k, v := c.Next()
	require.Equal(t, Pair, kind)
	require.Equal(t, "realm", k)
	require.Equal(t, "testrealm@host.com", v)

	kind, k, v = c.Next()
	require.Equal(t, Pair, kind)
	require.Equal(t, "nonce", k)
	require.Equal(t, "abc,def", v)
}

func TestBareSchemeToken(t *testing.T) {
	c := NewCursor(`Digest realm="x"`, true)

	kind, k, _ := c.Next()
	require.Equal(t, Scheme, kind)
	require.Equal(t, "Digest", k)

	kind, k, v := c.Next()
	require.Equal(t, Pair, kind)
	require.Equal(t, "realm", k)
	require.Equal(t, "x", v)
}

func TestBareTokenNotChallengeFails(t *testing.T) {
	c := NewCursor("Digest", false)
	kind, _, _ := c.Next()
	require.Equal(t, Fail, kind)
}

func TestUnterminatedQuoteFails(t *testing.T) {
	c := NewCursor(`realm="unterminated`, false)
	kind, _, _ := c.Next()
	require.Equal(t, Fail, kind)
}

func TestSplitCSV(t *testing.T) {
	require.Equal(t, []string{"auth", "auth-int"}, SplitCSV("auth, auth-int"))
	require.Equal(t, []string{"auth"}, SplitCSV(" auth "))
}
