package auth

import (
	"testing"

	"github.com/go-httpauth/engine/pkg/challenge"
	"github.com/stretchr/testify/require"
)

func testCreds(user, pass string) CredentialsFunc {
	return func(realm string, attempt int) (string, string, error) {
		return user, pass, nil
	}
}

func TestScemePreferenceDigestOverBasic(t *testing.T) {
	sess := NewSession(ServerClass, testCreds("u", "p"), nil, "host", false, NewConfig())

	list, err := challenge.Parse(`Digest realm="r", nonce="n", Basic realm="r"`)
	require.NoError(t, err)

	accepted := sess.HandleChallenges(list)
	require.True(t, accepted)
	require.Equal(t, challenge.SchemeDigest, sess.scheme)
}

func TestFallsBackToBasicWhenDigestRejected(t *testing.T) {
	sess := NewSession(ServerClass, testCreds("u", "p"), nil, "host", false, NewConfig())

	// Digest challenge missing nonce is invalid and must be skipped.
	list, err := challenge.Parse(`Digest realm="r", Basic realm="r"`)
	require.NoError(t, err)

	accepted := sess.HandleChallenges(list)
	require.True(t, accepted)
	require.Equal(t, challenge.SchemeBasic, sess.scheme)
}

func TestStaleReplayReusesCredentials(t *testing.T) {
	calls := 0
	creds := func(realm string, attempt int) (string, string, error) {
		calls++
		return "u", "p", nil
	}
	sess := NewSession(ServerClass, creds, nil, "host", false, NewConfig())

	first, err := challenge.Parse(`Digest realm="r", nonce="n1", qop="auth"`)
	require.NoError(t, err)
	require.True(t, sess.HandleChallenges(first))
	require.Equal(t, 1, calls)

	stale, err := challenge.Parse(`Digest realm="r", nonce="n2", qop="auth", stale=true`)
	require.NoError(t, err)
	require.True(t, sess.HandleChallenges(stale))
	require.Equal(t, 1, calls, "stale replay must not re-invoke the credentials callback")

	d := sess.state.(*digestState)
	require.Equal(t, "n2", d.nonce)
	require.Equal(t, uint32(0), d.nonceCount)
}

func TestContextFilterProxyOverHTTPS(t *testing.T) {
	sess := NewSession(ProxyClass, testCreds("u", "p"), nil, "host", true, NewConfig())
	require.Equal(t, ContextConnect, sess.Context)
	require.False(t, sess.Context.Allows("GET"))
	require.True(t, sess.Context.Allows("CONNECT"))
}

func TestContextFilterServerOverHTTPS(t *testing.T) {
	sess := NewSession(ServerClass, testCreds("u", "p"), nil, "host", true, NewConfig())
	require.Equal(t, ContextNotConnect, sess.Context)
	require.True(t, sess.Context.Allows("GET"))
	require.False(t, sess.Context.Allows("CONNECT"))
}

func TestContextFilterCleartextAllowsAny(t *testing.T) {
	sess := NewSession(ProxyClass, testCreds("u", "p"), nil, "host", false, NewConfig())
	require.Equal(t, ContextAny, sess.Context)
	require.True(t, sess.Context.Allows("GET"))
}

func TestBumpAttemptIncrementsBetweenChallengeRounds(t *testing.T) {
	var seen []int
	creds := func(realm string, attempt int) (string, string, error) {
		seen = append(seen, attempt)
		return "u", "p", nil
	}
	sess := NewSession(ServerClass, creds, nil, "host", false, NewConfig())

	list, err := challenge.Parse(`Basic realm="r"`)
	require.NoError(t, err)

	require.True(t, sess.HandleChallenges(list))
	sess.bumpAttempt()
	require.True(t, sess.HandleChallenges(list))

	require.Equal(t, []int{0, 1}, seen)
}

func TestNoAcceptableChallengeLeavesSessionIdle(t *testing.T) {
	creds := func(realm string, attempt int) (string, string, error) {
		return "", "", errCancelled
	}
	sess := NewSession(ServerClass, creds, nil, "host", false, NewConfig())

	list, err := challenge.Parse(`Digest realm="r", nonce="n"`)
	require.NoError(t, err)

	require.False(t, sess.HandleChallenges(list))
	require.False(t, sess.CanHandle())
}
