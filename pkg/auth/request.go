package auth

import (
	"io"

	"github.com/go-httpauth/engine/pkg/md5ctx"
	"github.com/google/uuid"
)

// HeaderBuffer is the minimal surface the engine needs to append a
// request header line. Real transports can adapt their own header type
// to this with a one-line wrapper.
type HeaderBuffer interface {
	AddHeaderLine(line string)
}

// AuthRequest is the per-request record an AuthSession attaches during
// OnCreate and frees during OnDestroy.
type AuthRequest struct {
	// CorrelationID identifies this request across the create/pre_send/
	// post_send/destroy lifecycle in structured logs.
	CorrelationID string

	Method string
	URI    string

	WillHandle bool

	// RequestBody, when set, is pulled in full by buildHeader to compute
	// H(entity-body) for qop=auth-int (RFC 2617 §3.2.2.3). The caller
	// supplies a fresh reader positioned at the start of the request
	// body before OnPreSend runs; buildHeader consumes it exactly once,
	// mirroring ne_pull_request_body. Left nil for bodyless requests.
	RequestBody io.Reader

	// ResponseBodyDigest accumulates H(entity-body) of the response for
	// qop=auth-int Authentication-Info verification (RFC 2617 §3.2.3).
	// OnPreSend resets it to a fresh context whenever the negotiated
	// scheme is auth-int Digest; the caller feeds response bytes into it
	// via DigestResponseBodyChunk as they arrive off the wire, standing
	// in for a response body reader registered at request time.
	ResponseBodyDigest md5ctx.Context

	authHeaderValue string
	infoHeaderValue string
	capturedInfo    bool
}

// DigestResponseBodyChunk folds another chunk of the response body into
// ResponseBodyDigest. Callers stream chunks into this as the response
// body is read off the wire; it is a no-op to call when auth-int is not
// in play, since ResponseBodyDigest is simply never consulted.
func (r *AuthRequest) DigestResponseBodyChunk(p []byte) {
	r.ResponseBodyDigest.UpdateBytes(p)
}

func newAuthRequest(method, uri string) *AuthRequest {
	return &AuthRequest{
		CorrelationID: uuid.New().String(),
		Method:        method,
		URI:           uri,
	}
}

// CaptureChallenge records the Class's challenge header value seen on a
// response, for OnPostSend to parse.
func (r *AuthRequest) CaptureChallenge(value string) {
	r.authHeaderValue = value
}

// CaptureInfo records the Class's Authentication-Info-style header value
// seen on a response, for OnPostSend to verify.
func (r *AuthRequest) CaptureInfo(value string) {
	r.infoHeaderValue = value
	r.capturedInfo = true
}
