// Package liberrors collects the typed errors the authentication engine
// can return, one struct per failure shape, following the convention
// that a caller inspecting an error with errors.As should find whatever
// fields led to the failure rather than a formatted string alone.
package liberrors

import "fmt"

// ErrAuthRequired is returned when server authentication failed after
// challenge processing was exhausted.
type ErrAuthRequired struct {
	Realm string
}

func (e ErrAuthRequired) Error() string {
	return "Server was not authenticated correctly."
}

// ErrProxyAuthRequired is the proxy-authentication counterpart of
// ErrAuthRequired.
type ErrProxyAuthRequired struct {
	Realm string
}

func (e ErrProxyAuthRequired) Error() string {
	return "Proxy server was not authenticated correctly."
}

// ErrAuthProtocol is returned when a server's Authentication-Info could
// not be verified, which may indicate tampering. The containing request
// fails; the session's stored credentials are left untouched so a later
// request may still authenticate.
type ErrAuthProtocol struct {
	Reason string
}

func (e ErrAuthProtocol) Error() string {
	return fmt.Sprintf("authentication protocol error: %s", e.Reason)
}

// ErrHeaderInvalid is returned when an assembled Authorization or
// Proxy-Authorization header value fails basic header-value validation.
// Realm, nonce and opaque are attacker-controlled strings echoed back
// from the challenge, so this is checked rather than assumed safe.
type ErrHeaderInvalid struct {
	Header string
	Value  string
}

func (e ErrHeaderInvalid) Error() string {
	return fmt.Sprintf("invalid value for header %q", e.Header)
}

// ErrCSPRNGUnavailable is returned when Digest credential generation
// needs a cryptographically secure random source and none is available.
// There is no weaker fallback; see Config.RequireCSPRNG.
type ErrCSPRNGUnavailable struct {
	Err error
}

func (e ErrCSPRNGUnavailable) Error() string {
	return fmt.Sprintf("no CSPRNG available for digest cnonce generation: %v", e.Err)
}

// ErrChallengeRejected is returned by a scheme driver's validator when a
// specific challenge cannot be accepted (missing parameter, unsupported
// algorithm, credentials callback cancelled). It never crosses the
// package boundary on its own: scheme selection treats it as "try the
// next challenge", and callers only see ErrAuthRequired / ErrProxyAuthRequired
// once every candidate has been rejected.
type ErrChallengeRejected struct {
	Scheme string
	Reason string
}

func (e ErrChallengeRejected) Error() string {
	return fmt.Sprintf("%s challenge rejected: %s", e.Scheme, e.Reason)
}
