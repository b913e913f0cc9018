package hawk

import (
	"context"
	"net/http"
	"time"
)

type extKey struct{}

// ContextWithExt returns a context carrying the ext string Transport signs
// the request with. It overrides SignConfig.Ext for that request.
func ContextWithExt(ctx context.Context, ext string) context.Context {
	return context.WithValue(ctx, extKey{}, ext)
}

// ExtFromContext returns the ext string stored by ContextWithExt.
func ExtFromContext(ctx context.Context) (string, bool) {
	ext, ok := ctx.Value(extKey{}).(string)
	return ext, ok
}

// Transport is an http.RoundTripper that signs outgoing requests with a
// Hawk Authorization header.
//
// Use NewTransport to create a Transport with a configured *http.Transport
// for proxy, TLS, and timeout settings.
type Transport struct {
	base   http.RoundTripper
	config SignConfig
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of http.DefaultTransport
// is used, giving an independent connection pool with default proxy, TLS,
// and timeout settings.
//
// Every request gets a fresh timestamp and nonce, so cfg.Nonce and
// cfg.Timestamp must be left empty.
func NewTransport(base *http.Transport, cfg SignConfig) *Transport {
	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	cfg.Nonce = ""
	cfg.Timestamp = time.Time{}

	return &Transport{
		base:   rt,
		config: cfg,
	}
}

// RoundTrip signs the request and then delegates to the base transport.
// The original request is cloned before signing to avoid mutation.
// When GetBody is available, the clone receives its own body copy so
// that payload hashing does not consume the caller's body.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if clone.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = body
	}

	cfg := t.config
	if ext, ok := ExtFromContext(req.Context()); ok {
		cfg.Ext = ext
	}

	if _, err := SignRequest(clone, cfg); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(clone)
}
