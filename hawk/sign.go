package hawk

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// nonceSize is the number of random bytes used to generate a nonce.
const nonceSize = 16

// Scheme is the authentication scheme name of the Authorization header.
const Scheme = "Hawk"

// GenerateNonce returns a cryptographically random nonce. The returned
// value is 16 random bytes encoded as unpadded base64url (22 characters).
func GenerateNonce() (string, error) {
	b := make([]byte, nonceSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// SignedRequest is the result of signing one request.
type SignedRequest struct {
	Artifacts Artifacts
	ID        string
	MAC       string

	// Header is the Authorization header value.
	Header string
}

// Sign computes the MAC for a and assembles the Authorization header.
func Sign(creds Credentials, a Artifacts) (SignedRequest, error) {
	if err := creds.Validate(); err != nil {
		return SignedRequest{}, err
	}

	if err := checkAttributes(creds.ID, a); err != nil {
		return SignedRequest{}, err
	}

	mac, err := creds.Algorithm.MAC(creds.Key, []byte(a.Normalized(KindHeader)))
	if err != nil {
		return SignedRequest{}, err
	}

	return SignedRequest{
		Artifacts: a,
		ID:        creds.ID,
		MAC:       mac,
		Header:    buildHeader(creds.ID, mac, a),
	}, nil
}

// SignConfig configures request signing.
type SignConfig struct {
	// Credentials supplies the credentials. Required.
	Credentials CredentialsProvider

	// Ext is the optional application-specific data sent in the ext
	// attribute.
	Ext string

	// Nonce overrides the generated nonce. Leave empty outside tests.
	Nonce string

	// Timestamp overrides the signing time. When zero, Now is used.
	Timestamp time.Time

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// LocaltimeOffset is added to the current time to compensate for clock
	// skew against the server.
	LocaltimeOffset time.Duration

	// HashPayload, when set, covers the request body and its Content-Type
	// with a payload hash.
	HashPayload bool
}

// SignRequest signs an HTTP request in-place by setting its Authorization
// header. The credentials are read once, before anything is computed.
func SignRequest(r *http.Request, cfg SignConfig) (SignedRequest, error) {
	if cfg.Credentials == nil {
		return SignedRequest{}, ErrNoCredentials
	}

	creds := cfg.Credentials.Credentials()
	if err := creds.Validate(); err != nil {
		return SignedRequest{}, err
	}

	if r == nil || r.URL == nil {
		return SignedRequest{}, ErrInvalidRequestSpec
	}

	ts := cfg.Timestamp
	if ts.IsZero() {
		now := cfg.Now
		if now == nil {
			now = time.Now
		}

		ts = now().Add(cfg.LocaltimeOffset)
	}

	nonce := cfg.Nonce
	if nonce == "" {
		var err error
		if nonce, err = GenerateNonce(); err != nil {
			return SignedRequest{}, err
		}
	}

	a, err := artifactsFromURL(r.Method, requestURL(r), ts, nonce, cfg.Ext)
	if err != nil {
		return SignedRequest{}, err
	}

	if cfg.HashPayload {
		body, err := readAndRestoreBody(r)
		if err != nil {
			return SignedRequest{}, err
		}

		if a.Hash, err = PayloadHash(creds.Algorithm, r.Header.Get("Content-Type"), body); err != nil {
			return SignedRequest{}, err
		}
	}

	signed, err := Sign(creds, a)
	if err != nil {
		return SignedRequest{}, err
	}

	r.Header.Set("Authorization", signed.Header)

	return signed, nil
}

// buildHeader assembles the Authorization header value. Attribute order
// is id, ts, nonce, hash, ext, mac.
func buildHeader(id, mac string, a Artifacts) string {
	var b strings.Builder

	b.WriteString(Scheme)
	b.WriteString(` id="`)
	b.WriteString(escapeAttribute(id))
	b.WriteString(`", ts="`)
	b.WriteString(strconv.FormatInt(a.Timestamp, 10))
	b.WriteString(`", nonce="`)
	b.WriteString(escapeAttribute(a.Nonce))

	if a.Hash != "" {
		b.WriteString(`", hash="`)
		b.WriteString(a.Hash)
	}

	if a.Ext != "" {
		b.WriteString(`", ext="`)
		b.WriteString(escapeAttribute(a.Ext))
	}

	b.WriteString(`", mac="`)
	b.WriteString(mac)
	b.WriteByte('"')

	return b.String()
}

// checkAttributes rejects header attribute values carrying control
// characters, which cannot be sent in an HTTP header.
func checkAttributes(id string, a Artifacts) error {
	for _, attr := range []struct{ name, value string }{
		{"id", id},
		{"nonce", a.Nonce},
		{"hash", a.Hash},
		{"ext", a.Ext},
	} {
		if i := strings.IndexFunc(attr.value, isControl); i >= 0 {
			return fmt.Errorf("%w: %s contains control character %q at offset %d", ErrInvalidRequestSpec, attr.name, attr.value[i], i)
		}
	}

	return nil
}

func isControl(r rune) bool {
	return r < 0x20 || r == 0x7f
}

var attributeEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeAttribute(s string) string {
	return attributeEscaper.Replace(s)
}

// requestURL returns the absolute URL of an outgoing request, filling in
// the host from r.Host when the URL carries none.
func requestURL(r *http.Request) *url.URL {
	u := *r.URL
	if u.Host == "" {
		u.Host = r.Host
	}

	if u.Scheme == "" && u.Host != "" {
		u.Scheme = "http"
		if r.TLS != nil {
			u.Scheme = "https"
		}
	}

	return &u
}

// readAndRestoreBody reads the entire request body and replaces it with a
// new reader so the body can be read again.
func readAndRestoreBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
