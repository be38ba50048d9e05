package auth

import (
	"testing"

	"github.com/go-httpauth/engine/pkg/challenge"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	token []byte
	err   error
}

func (p *fakeProvider) InitSecContext(principal string, inputToken []byte) ([]byte, bool, error) {
	if p.err != nil {
		return nil, false, p.err
	}
	return p.token, true, nil
}

func TestNegotiatePrincipalIncludesHostname(t *testing.T) {
	require.Equal(t, "khttp@example.com", negotiatePrincipal("example.com"))
}

func TestNegotiateWithoutProviderRejects(t *testing.T) {
	_, err := validateNegotiate(&challenge.Challenge{}, nil, "example.com")
	require.Error(t, err)
}

func TestNegotiateBuildsHeaderFromProviderToken(t *testing.T) {
	st, err := validateNegotiate(&challenge.Challenge{}, &fakeProvider{token: []byte("tok")}, "example.com")
	require.NoError(t, err)

	header, err := st.buildHeader(&AuthRequest{})
	require.NoError(t, err)
	require.Equal(t, "GSS-Negotiate dG9r", header)
}
