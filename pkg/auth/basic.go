package auth

import (
	"encoding/base64"
	"fmt"

	"github.com/go-httpauth/engine/pkg/challenge"
	"github.com/go-httpauth/engine/pkg/liberrors"
)

// basicState is the per-session state of the Basic scheme: just the
// base64-encoded "username:password" blob, already assembled so the
// cleartext password need not be retained across requests.
type basicState struct {
	encoded string
}

// validateBasic implements the Basic driver's challenge validation: a
// realm is required, and the credentials callback supplies the secret.
func validateBasic(c *challenge.Challenge, creds CredentialsFunc, attempt int) (*basicState, error) {
	if c.Realm == "" {
		return nil, liberrors.ErrChallengeRejected{Scheme: "Basic", Reason: "missing realm"}
	}

	username, password, err := creds(c.Realm, attempt)
	if err != nil {
		return nil, liberrors.ErrChallengeRejected{Scheme: "Basic", Reason: "credentials callback cancelled"}
	}

	passwordBytes := []byte(password)
	defer zeroBytes(passwordBytes)

	blob := []byte(username + ":")
	blob = append(blob, passwordBytes...)
	encoded := base64.StdEncoding.EncodeToString(blob)

	return &basicState{encoded: encoded}, nil
}

func (s *basicState) buildHeader(_ *AuthRequest) (string, error) {
	return fmt.Sprintf("Basic %s", s.encoded), nil
}
