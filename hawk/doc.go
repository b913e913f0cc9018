// Package hawk signs outgoing HTTP requests with Hawk MAC authentication.
//
// A request is reduced to its artifacts (method, resource, host, port,
// timestamp, nonce, optional payload hash and ext) which are joined into a
// normalized string and authenticated with HMAC-SHA256 (or HMAC-SHA1)
// keyed by the client's secret. The result is sent as
//
//	Authorization: Hawk id="...", ts="...", nonce="...", ext="...", mac="..."
//
// # Signing Requests
//
// Use SignRequest to set the Authorization header on an HTTP request:
//
//	creds := hawk.StaticCredentials{ID: "token", Key: secret, Algorithm: hawk.AlgorithmSHA256}
//
//	signed, err := hawk.SignRequest(req, hawk.SignConfig{
//	    Credentials: creds,
//	    Ext:         hawk.Ext{}.Add("email", "jon@example.com").String(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A fresh timestamp and a random nonce are generated for every call, so a
// signed request can not be replayed outside the server's window.
//
// # Credential Rotation
//
// RotatingCredentials can be swapped at any time. Each signing operation
// reads one snapshot before it starts computing:
//
//	creds := hawk.NewRotatingCredentials(initial)
//	// later, from any goroutine
//	creds.Rotate(next)
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs all outgoing
// requests. Pass an *http.Transport to configure proxy, TLS, and timeout
// settings. Pass nil for sensible defaults:
//
//	client := &http.Client{
//	    Transport: hawk.NewTransport(nil, hawk.SignConfig{
//	        Credentials: creds,
//	    }),
//	}
//
// A per-request ext string can be attached with ContextWithExt.
package hawk
