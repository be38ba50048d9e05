package auth

import (
	"encoding/base64"
	"fmt"

	"github.com/go-httpauth/engine/pkg/challenge"
	"github.com/go-httpauth/engine/pkg/liberrors"
)

// SecurityContextProvider abstracts whatever GSSAPI/SSPI binding a
// caller wants to plug in for the Negotiate scheme. No concrete binding
// ships in this module; a nil provider simply makes Negotiate always
// reject, falling through to Digest then Basic.
type SecurityContextProvider interface {
	// InitSecContext advances the security context handshake. principal
	// is built as "khttp@" + hostname. inputToken is nil on the first
	// call. done reports whether the handshake is complete.
	InitSecContext(principal string, inputToken []byte) (outputToken []byte, done bool, err error)
}

type negotiateState struct {
	token string
}

func negotiatePrincipal(hostname string) string {
	return "khttp@" + hostname
}

// validateNegotiate implements the Negotiate driver: it initiates a
// security context against a server principal derived from hostname and
// stores the resulting output token, base64-encoded, ready for the
// request header.
func validateNegotiate(c *challenge.Challenge, provider SecurityContextProvider, hostname string) (*negotiateState, error) {
	if provider == nil {
		return nil, liberrors.ErrChallengeRejected{Scheme: "GSS-Negotiate", Reason: "no security context provider configured"}
	}

	principal := negotiatePrincipal(hostname)
	outputToken, _, err := provider.InitSecContext(principal, nil)
	if err != nil {
		return nil, liberrors.ErrChallengeRejected{Scheme: "GSS-Negotiate", Reason: err.Error()}
	}

	return &negotiateState{token: base64.StdEncoding.EncodeToString(outputToken)}, nil
}

func (s *negotiateState) buildHeader(_ *AuthRequest) (string, error) {
	return fmt.Sprintf("GSS-Negotiate %s", s.token), nil
}
