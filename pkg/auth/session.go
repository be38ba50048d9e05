package auth

import (
	"fmt"

	"github.com/go-httpauth/engine/pkg/challenge"
)

// schemeState is the sum type the source's function-pointer-driven
// session record becomes in Go: one concrete type per scheme, dispatched
// through the interface's buildHeader method rather than function
// pointers, with type assertions where only Digest applies.
type schemeState interface {
	buildHeader(req *AuthRequest) (string, error)
}

// schemePreference is the fixed order scheme selection walks a parsed
// challenge list in: Negotiate, then Digest, then Basic.
var schemePreference = []challenge.Scheme{
	challenge.SchemeNegotiate,
	challenge.SchemeDigest,
	challenge.SchemeBasic,
}

// AuthSession is the per-target (server or proxy), per-HTTP-session
// authentication state. Exactly one AuthSession exists per (session,
// Class) pair.
type AuthSession struct {
	Class    Class
	Context  ContextFilter
	Creds    CredentialsFunc
	Provider SecurityContextProvider
	Hostname string

	cfg Config

	scheme  challenge.Scheme
	state   schemeState
	attempt int
}

// NewSession allocates an AuthSession for class against hostname. isTLS
// determines the context filter (§3 invariant: server auth is filtered
// to NotConnect and proxy auth to Connect over TLS; both are Any over
// cleartext).
func NewSession(class Class, creds CredentialsFunc, provider SecurityContextProvider, hostname string, isTLS bool, cfg Config) *AuthSession {
	return &AuthSession{
		Class:    class,
		Context:  FilterFor(class, isTLS),
		Creds:    creds,
		Provider: provider,
		Hostname: hostname,
		cfg:      cfg,
		scheme:   challenge.SchemeUnknown,
	}
}

// CanHandle reports whether a scheme has been selected and is ready to
// produce credentials, i.e. scheme != SchemeUnknown per the design
// notes' encoding of the original can_handle flag.
func (s *AuthSession) CanHandle() bool {
	return s.scheme != challenge.SchemeUnknown
}

// Attempt returns the current retry attempt counter.
func (s *AuthSession) Attempt() int {
	return s.attempt
}

// HandleChallenges takes the challenge list of a WWW-Authenticate /
// Proxy-Authenticate header value (already parsed by pkg/challenge) and
// attempts scheme selection in preference order (§4.4). It returns true iff some
// candidate was accepted, in which case the session transitions to
// Ready with the accepted scheme's state installed.
func (s *AuthSession) HandleChallenges(challenges []*challenge.Challenge) bool {
	for _, want := range schemePreference {
		for _, c := range challenges {
			if c.Scheme != want {
				continue
			}

			switch want {
			case challenge.SchemeNegotiate:
				st, err := validateNegotiate(c, s.Provider, s.Hostname)
				if err != nil {
					continue
				}
				s.scheme, s.state = want, st
				return true

			case challenge.SchemeDigest:
				var prior *digestState
				if d, ok := s.state.(*digestState); ok {
					prior = d
				}
				st, err := validateDigest(c, s.Creds, s.attempt, s.cfg, prior)
				if err != nil {
					continue
				}
				s.scheme, s.state = want, st
				return true

			case challenge.SchemeBasic:
				st, err := validateBasic(c, s.Creds, s.attempt)
				if err != nil {
					continue
				}
				s.scheme, s.state = want, st
				return true
			}
		}
	}

	s.scheme, s.state = challenge.SchemeUnknown, nil
	return false
}

// BuildHeaderValue produces the scheme-specific request header value for
// req, e.g. `Basic <blob>` or a full Digest parameter list.
func (s *AuthSession) BuildHeaderValue(req *AuthRequest) (string, error) {
	if s.state == nil {
		return "", fmt.Errorf("auth: no scheme selected for session")
	}
	return s.state.buildHeader(req)
}

// VerifyInfo checks an Authentication-Info / Proxy-Authentication-Info
// header captured on the response, per §4.8. It is a no-op unless the
// negotiated scheme is Digest and req asserted WillHandle.
func (s *AuthSession) VerifyInfo(req *AuthRequest, infoHeaderValue string) error {
	d, ok := s.state.(*digestState)
	if !ok || !req.WillHandle {
		return nil
	}
	return d.verifyInfo(req, infoHeaderValue)
}

// Clean resets the session to Idle, discarding any selected scheme. Used
// when no candidate challenge is accepted and the class's failure must
// be surfaced.
func (s *AuthSession) Clean() {
	s.scheme, s.state = challenge.SchemeUnknown, nil
	s.attempt = 0
}

// bumpAttempt increments the retry attempt counter, used by OnPostSend
// when re-entering challenge processing.
func (s *AuthSession) bumpAttempt() {
	s.attempt++
}
