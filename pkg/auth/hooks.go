// Package auth implements the authentication state machine and scheme
// drivers (Basic, Digest, Negotiate) described for this HTTP client's
// auth engine, plus the request-lifecycle hooks a surrounding HTTP
// engine calls into to integrate it.
package auth

import (
	"context"
	"fmt"

	"github.com/go-httpauth/engine/internal/authlog"
	"github.com/go-httpauth/engine/pkg/challenge"
	"github.com/go-httpauth/engine/pkg/liberrors"
	"github.com/go-httpauth/engine/pkg/md5ctx"
	"golang.org/x/net/http/httpguts"
)

// Outcome is what OnPostSend tells the surrounding HTTP engine to do
// next.
type Outcome int

const (
	// Ok means the response needs no further auth handling.
	Ok Outcome = iota
	// Retry means a new challenge was accepted; the engine should
	// rebuild and resend the request.
	Retry
	// Failed means no challenge was acceptable, or Authentication-Info
	// verification failed; the accompanying error should be surfaced to
	// the caller.
	Failed
)

// OnCreate is the create lifecycle hook (§4.9). It consults the
// session's context filter against method; if it passes, it attaches
// and returns a fresh *AuthRequest, resets the attempt counter, and logs
// the decision. If the filter rejects this request (e.g. a non-CONNECT
// request against a proxy-auth session over TLS), it returns nil.
func (s *AuthSession) OnCreate(ctx context.Context, method, uri string) *AuthRequest {
	log := authlog.From(ctx).
		WithField("class", s.Class.Name).
		WithField("method", method).
		WithField("ts", s.cfg.Clock())

	if !s.Context.Allows(method) {
		log.Debug("auth: context filter rejected request")
		return nil
	}

	req := newAuthRequest(method, uri)
	s.attempt = 0
	log.WithField("correlation_id", req.CorrelationID).Debug("auth: request attached")
	return req
}

// OnPreSend is the pre-send lifecycle hook (§4.9). If the session can
// authenticate, it marks req.WillHandle, builds the scheme-specific
// header value, validates it as a legal header field value (realm and
// nonce are attacker-controlled and echoed verbatim), and appends it to
// buf.
func (s *AuthSession) OnPreSend(ctx context.Context, req *AuthRequest, buf HeaderBuffer) error {
	if req == nil || !s.CanHandle() {
		return nil
	}

	req.WillHandle = true

	if d, ok := s.state.(*digestState); ok && d.qop == QopAuthInt {
		// Stand in for ne_add_response_body_reader: reset the sink the
		// caller streams response bytes into so Authentication-Info
		// verification in OnPostSend digests only this response's body.
		req.ResponseBodyDigest = md5ctx.New()
	}

	value, err := s.BuildHeaderValue(req)
	if err != nil {
		return err
	}

	if !httpguts.ValidHeaderFieldValue(value) {
		return liberrors.ErrHeaderInvalid{Header: s.Class.RequestHeader, Value: value}
	}

	buf.AddHeaderLine(fmt.Sprintf("%s: %s\r\n", s.Class.RequestHeader, value))

	authlog.From(ctx).
		WithField("class", s.Class.Name).
		WithField("correlation_id", req.CorrelationID).
		Debug("auth: credentials header emitted")

	return nil
}

// OnPostSend is the post-send lifecycle hook (§4.9). It verifies any
// captured Authentication-Info first; failing that, it checks whether
// the response status matches the class's gated code and a challenge
// was captured, in which case it re-parses the challenge list and
// re-runs scheme selection.
func (s *AuthSession) OnPostSend(ctx context.Context, req *AuthRequest, status int) (Outcome, error) {
	log := authlog.From(ctx).WithField("class", s.Class.Name).WithField("ts", s.cfg.Clock())
	if req != nil {
		log = log.WithField("correlation_id", req.CorrelationID)
	}

	if req != nil && req.capturedInfo {
		if err := s.VerifyInfo(req, req.infoHeaderValue); err != nil {
			log.WithError(err).Warn("auth: Authentication-Info verification failed")
			return Failed, err
		}
		log.Debug("auth: Authentication-Info verified")
		return Ok, nil
	}

	if status == s.Class.StatusCode && req != nil && req.authHeaderValue != "" {
		challenges, err := challenge.Parse(req.authHeaderValue)
		if err != nil {
			log.WithError(err).Debug("auth: challenge header unparseable")
			s.Clean()
			return Failed, s.Class.Failure()
		}

		accepted := s.HandleChallenges(challenges)
		s.bumpAttempt()

		if accepted {
			log.Debug("auth: challenge accepted, retrying")
			return Retry, nil
		}

		log.Debug("auth: no acceptable challenge, failing")
		s.Clean()
		return Failed, s.Class.Failure()
	}

	return Ok, nil
}

// OnDestroy is the destroy-request lifecycle hook (§4.9). In this
// engine, AuthRequest carries no resources beyond Go-managed memory, so
// there is nothing to release explicitly; the hook exists so callers
// have a single place to unregister response-header/body handlers they
// installed for req.
func (s *AuthSession) OnDestroy(_ *AuthRequest) {}

// OnSessionDestroy is the destroy-session lifecycle hook (§4.9):
// equivalent to Clean, provided under its own name for symmetry with the
// request-scoped hooks.
func (s *AuthSession) OnSessionDestroy() {
	s.Clean()
}
