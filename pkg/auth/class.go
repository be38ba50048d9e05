package auth

import "github.com/go-httpauth/engine/pkg/liberrors"

// Class is the static descriptor distinguishing server-side authentication
// from forward-proxy authentication: which headers to read and write,
// which status code gates a challenge, and which error to surface.
type Class struct {
	Name string

	RequestHeader   string // "Authorization" | "Proxy-Authorization"
	ChallengeHeader string // "WWW-Authenticate" | "Proxy-Authenticate"
	InfoHeader      string // "Authentication-Info" | "Proxy-Authentication-Info"

	StatusCode int // 401 | 407

	newFailure func() error
}

// Failure builds the typed error this Class surfaces once every
// candidate challenge has been exhausted.
func (c Class) Failure() error {
	return c.newFailure()
}

// ServerClass governs origin-server authentication (401 / WWW-Authenticate).
var ServerClass = Class{
	Name:            "server",
	RequestHeader:   "Authorization",
	ChallengeHeader: "WWW-Authenticate",
	InfoHeader:      "Authentication-Info",
	StatusCode:      401,
	newFailure:      func() error { return liberrors.ErrAuthRequired{} },
}

// ProxyClass governs forward-proxy authentication (407 / Proxy-Authenticate).
var ProxyClass = Class{
	Name:            "proxy",
	RequestHeader:   "Proxy-Authorization",
	ChallengeHeader: "Proxy-Authenticate",
	InfoHeader:      "Proxy-Authentication-Info",
	StatusCode:      407,
	newFailure:      func() error { return liberrors.ErrProxyAuthRequired{} },
}

// ContextFilter constrains which requests within a session an AuthSession
// applies to, based on whether the request method is CONNECT.
type ContextFilter int

const (
	// ContextAny applies to every request (cleartext sessions).
	ContextAny ContextFilter = iota
	// ContextConnect applies only to CONNECT requests (proxy auth over HTTPS).
	ContextConnect
	// ContextNotConnect applies to every request except CONNECT (server auth over HTTPS).
	ContextNotConnect
)

// Allows reports whether a request with the given method passes this filter.
func (f ContextFilter) Allows(method string) bool {
	isConnect := method == "CONNECT"
	switch f {
	case ContextConnect:
		return isConnect
	case ContextNotConnect:
		return !isConnect
	default:
		return true
	}
}

// FilterFor derives the context filter for a Class given whether the
// underlying HTTP session is cleartext or TLS.
func FilterFor(class Class, isTLS bool) ContextFilter {
	if !isTLS {
		return ContextAny
	}
	if class.Name == "proxy" {
		return ContextConnect
	}
	return ContextNotConnect
}
