package auth

import (
	"net/url"

	"golang.org/x/net/http/httpproxy"
)

// DetectProxyClass is a convenience helper for callers that have not
// already classified a pending request: it consults the process's proxy
// environment (HTTP_PROXY / HTTPS_PROXY / NO_PROXY) to decide whether
// requestURL would be routed through a forward proxy, and if so returns
// ProxyClass; otherwise ServerClass. This is additive over §4.9's
// external interface — callers with their own CONNECT/transport-level
// proxy detection should use that instead.
func DetectProxyClass(requestURL *url.URL) Class {
	cfg := httpproxy.FromEnvironment()
	proxyURL, err := cfg.ProxyFunc()(requestURL)
	if err != nil || proxyURL == nil {
		return ServerClass
	}
	return ProxyClass
}
