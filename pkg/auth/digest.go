package auth

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-httpauth/engine/pkg/challenge"
	"github.com/go-httpauth/engine/pkg/liberrors"
	"github.com/go-httpauth/engine/pkg/md5ctx"
	"github.com/go-httpauth/engine/pkg/tokenize"
	"github.com/google/uuid"
)

// digestState is the per-session state of the Digest scheme. hA1 is the
// scheme parameter actually used in request digests (sess-salted when
// algorithm is MD5-sess); baseHA1 is the password-derived digest before
// any sess-salting, retained so a stale replay with a fresh nonce/cnonce
// can re-salt it without re-invoking the credentials callback.
type digestState struct {
	username  string
	realm     string
	nonce     string
	cnonce    string
	opaque    string
	qop       Qop
	algorithm challenge.Algorithm

	baseHA1 string
	hA1     string

	nonceCount uint32

	// storedRdig snapshots the response-digest MD5 context up to (but
	// excluding) H(A2), captured while building the request header.
	// VerifyInfo resumes from this snapshot to check rspauth without
	// recomputing H(A1).
	storedRdig md5ctx.Context
}

// generateCnonce derives a fresh 32-hex-char cnonce from a CSPRNG, with a
// UUIDv4 folded in as a second entropy contribution. There is no
// fallback to a weaker source: cfg.RequireCSPRNG (true by default) makes
// a failed read here fatal rather than silently degrading, per the
// CSPRNG decision in this engine's design notes.
func generateCnonce(cfg Config) (string, error) {
	buf := make([]byte, 16)
	n, err := io.ReadFull(cfg.Rand, buf)
	if err != nil {
		if cfg.RequireCSPRNG {
			return "", liberrors.ErrCSPRNGUnavailable{Err: err}
		}
		// AllowWeakEntropy: a short/failed read is not fatal here, only
		// whatever prefix of buf was actually filled is used.
		buf = buf[:n]
	}

	id := uuid.New()
	combined := append(buf, id[:]...)
	return md5ctx.SumHex(string(combined)), nil
}

// validateDigest implements the Digest driver's challenge validation and
// H(A1) derivation (RFC 2617 §3.2.2.2). prior is the session's previous
// digestState, if any, consulted only for stale replay.
func validateDigest(c *challenge.Challenge, creds CredentialsFunc, attempt int, cfg Config, prior *digestState) (*digestState, error) {
	if c.Realm == "" || c.Nonce == "" {
		return nil, liberrors.ErrChallengeRejected{Scheme: "Digest", Reason: "missing realm or nonce"}
	}
	// RFC 2617 defaults algorithm to MD5 when the parameter is absent;
	// only an explicit, unrecognised token is rejected.
	algorithm := c.EffectiveAlgorithm()
	if c.GotAlgorithm && algorithm == challenge.AlgorithmUnknown {
		return nil, liberrors.ErrChallengeRejected{Scheme: "Digest", Reason: "unsupported algorithm"}
	}
	if algorithm == challenge.AlgorithmMD5Sess && !c.QopAuth && !c.QopAuthInt {
		return nil, liberrors.ErrChallengeRejected{Scheme: "Digest", Reason: "MD5-sess requires a qop"}
	}

	var username, baseHA1 string
	if c.Stale && prior != nil && prior.realm == c.Realm && prior.baseHA1 != "" {
		username = prior.username
		baseHA1 = prior.baseHA1
	} else {
		var password string
		var err error
		username, password, err = creds(c.Realm, attempt)
		if err != nil {
			return nil, liberrors.ErrChallengeRejected{Scheme: "Digest", Reason: "credentials callback cancelled"}
		}

		passwordBytes := []byte(password)
		defer zeroBytes(passwordBytes)

		baseHA1 = md5ctx.SumHex(username + ":" + c.Realm + ":" + string(passwordBytes))
	}

	cnonce, err := generateCnonce(cfg)
	if err != nil {
		return nil, err
	}

	hA1 := baseHA1
	if algorithm == challenge.AlgorithmMD5Sess {
		hA1 = md5ctx.SumHex(baseHA1 + ":" + c.Nonce + ":" + cnonce)
	}

	qop := QopNone
	switch {
	case c.QopAuthInt:
		qop = QopAuthInt
	case c.QopAuth:
		qop = QopAuth
	}

	return &digestState{
		username:  username,
		realm:     c.Realm,
		nonce:     c.Nonce,
		cnonce:    cnonce,
		opaque:    c.Opaque,
		qop:       qop,
		algorithm: algorithm,
		baseHA1:   baseHA1,
		hA1:       hA1,
	}, nil
}

func (s *digestState) algorithmToken() string {
	if s.algorithm == challenge.AlgorithmMD5Sess {
		return "MD5-sess"
	}
	return "MD5"
}

// buildHeader assembles the per-request Authorization/Proxy-Authorization
// value (RFC 2617 §3.2.2), incrementing nonce_count and snapshotting
// storedRdig for later Authentication-Info verification.
func (s *digestState) buildHeader(req *AuthRequest) (string, error) {
	var nc string
	if s.qop != QopNone {
		s.nonceCount++
		nc = fmt.Sprintf("%08x", s.nonceCount)
	}

	a2 := req.Method + ":" + req.URI
	if s.qop == QopAuthInt {
		bodyDigest, err := digestRequestBody(req)
		if err != nil {
			return "", err
		}
		a2 += ":" + bodyDigest
	}
	hA2 := md5ctx.SumHex(a2)

	ctx := md5ctx.New()
	ctx.Update(s.hA1 + ":" + s.nonce + ":")
	if s.qop != QopNone {
		ctx.Update(nc + ":" + s.cnonce + ":")
		s.storedRdig = ctx.Clone()
		ctx.Update(s.qop.String() + ":")
	} else {
		s.storedRdig = ctx.Clone()
	}
	ctx.Update(hA2)
	response := ctx.Sum()

	var b strings.Builder
	fmt.Fprintf(&b, `Digest username="%s", realm="%s", nonce="%s", uri="%s", response="%s", algorithm="%s"`,
		s.username, s.realm, s.nonce, req.URI, response, s.algorithmToken())
	if s.opaque != "" {
		fmt.Fprintf(&b, `, opaque="%s"`, s.opaque)
	}
	if s.qop != QopNone {
		fmt.Fprintf(&b, `, cnonce="%s", nc=%s, qop="%s"`, s.cnonce, nc, s.qop.String())
	}
	return b.String(), nil
}

// digestRequestBody pulls req.RequestBody in full and returns H(entity-body)
// for qop=auth-int (RFC 2617 §3.2.2.3), matching ne_pull_request_body's
// synchronous read at header-build time. A nil RequestBody digests as
// the empty string, same as a bodyless GET.
func digestRequestBody(req *AuthRequest) (string, error) {
	ctx := md5ctx.New()
	if req.RequestBody != nil {
		buf := make([]byte, 32*1024)
		for {
			n, err := req.RequestBody.Read(buf)
			if n > 0 {
				ctx.UpdateBytes(buf[:n])
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", err
			}
		}
	}
	return ctx.Sum(), nil
}

// verifyInfo checks the server's Authentication-Info / Proxy-Authentication-Info
// response against storedRdig (RFC 2617 §3.2.3).
//
// RFC 2617 §3.2.3 is ambiguous on whether H(A2') for rspauth includes the
// request method; this implementation uses md5(":" + uri) (empty
// method), matching the long-observed behaviour of the reference client
// this engine's design is grounded on. That choice is deliberate, not an
// oversight — see the design notes' Open Questions resolution.
func (s *digestState) verifyInfo(req *AuthRequest, infoHeaderValue string) error {
	params, err := parseKeyValuePairs(infoHeaderValue)
	if err != nil {
		return liberrors.ErrAuthProtocol{Reason: "malformed Authentication-Info"}
	}

	if s.qop != QopNone {
		rspauth, ok := params["rspauth"]
		if !ok {
			return liberrors.ErrAuthProtocol{Reason: "missing rspauth"}
		}
		cnonce, ok := params["cnonce"]
		if !ok || cnonce != s.cnonce {
			return liberrors.ErrAuthProtocol{Reason: "cnonce mismatch"}
		}
		nc, ok := params["nc"]
		if !ok || nc != fmt.Sprintf("%08x", s.nonceCount) {
			return liberrors.ErrAuthProtocol{Reason: "nc mismatch"}
		}

		a2p := ":" + req.URI
		if s.qop == QopAuthInt {
			a2p += ":" + req.ResponseBodyDigest.Sum()
		}
		hA2p := md5ctx.SumHex(a2p)

		ctx := s.storedRdig.Clone()
		ctx.Update(s.qop.String() + ":")
		ctx.Update(hA2p)
		expected := ctx.Sum()

		if !strings.EqualFold(expected, rspauth) {
			return liberrors.ErrAuthProtocol{Reason: "rspauth mismatch"}
		}
	}

	if nextnonce, ok := params["nextnonce"]; ok && nextnonce != "" {
		s.nonce = nextnonce
		s.nonceCount = 0
	}

	return nil
}

// parseKeyValuePairs tokenizes a plain (non-challenge) comma-separated
// key=value header value, as used by Authentication-Info.
func parseKeyValuePairs(header string) (map[string]string, error) {
	cur := tokenize.NewCursor(header, false)
	out := make(map[string]string)
	for {
		kind, key, value := cur.Next()
		switch kind {
		case tokenize.End:
			return out, nil
		case tokenize.Fail:
			return nil, fmt.Errorf("malformed key/value header %q", header)
		case tokenize.Pair:
			out[key] = value
		}
	}
}
