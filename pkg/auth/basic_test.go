package auth

import (
	"errors"
	"testing"

	"github.com/go-httpauth/engine/pkg/challenge"
	"github.com/stretchr/testify/require"
)

var errCancelled = errors.New("cancelled")

func TestBasicHeaderVector(t *testing.T) {
	creds := func(realm string, attempt int) (string, string, error) {
		require.Equal(t, "test", realm)
		return "Aladdin", "open sesame", nil
	}

	st, err := validateBasic(&challenge.Challenge{Scheme: challenge.SchemeBasic, Realm: "test"}, creds, 0)
	require.NoError(t, err)

	header, err := st.buildHeader(&AuthRequest{})
	require.NoError(t, err)
	require.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", header)
}

func TestBasicRequiresRealm(t *testing.T) {
	_, err := validateBasic(&challenge.Challenge{Scheme: challenge.SchemeBasic}, nil, 0)
	require.Error(t, err)
}

func TestBasicCredentialsCancelled(t *testing.T) {
	creds := func(realm string, attempt int) (string, string, error) {
		return "", "", errCancelled
	}
	_, err := validateBasic(&challenge.Challenge{Realm: "test"}, creds, 0)
	require.Error(t, err)
}
