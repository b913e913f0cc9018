package hawk

import (
	"fmt"
	"sync/atomic"
)

// Credentials identify the client to the server. Key is the shared
// secret used to compute request MACs.
type Credentials struct {
	ID        string
	Key       []byte
	Algorithm Algorithm
}

// Validate checks that the credentials can be used for signing.
func (c Credentials) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: id must not be empty", ErrMissingCredentials)
	}

	if len(c.Key) == 0 {
		return fmt.Errorf("%w: key must not be empty", ErrMissingCredentials)
	}

	if !c.Algorithm.Supported() {
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, c.Algorithm.String())
	}

	return nil
}

// clone returns a copy that shares no memory with c.
func (c Credentials) clone() Credentials {
	key := make([]byte, len(c.Key))
	copy(key, c.Key)

	return Credentials{ID: c.ID, Key: key, Algorithm: c.Algorithm}
}

// CredentialsProvider returns the credentials to sign one request with.
// Each call must return a consistent snapshot.
type CredentialsProvider interface {
	Credentials() Credentials
}

// StaticCredentials is a CredentialsProvider that never changes.
type StaticCredentials Credentials

// Credentials returns a copy of the static credentials.
func (s StaticCredentials) Credentials() Credentials {
	return Credentials(s).clone()
}

// RotatingCredentials is a CredentialsProvider whose credentials can be
// replaced while requests are being signed. A signing operation that has
// already taken its snapshot keeps using it.
type RotatingCredentials struct {
	current atomic.Pointer[Credentials]
}

// NewRotatingCredentials returns a provider holding a copy of creds.
func NewRotatingCredentials(creds Credentials) *RotatingCredentials {
	r := &RotatingCredentials{}
	r.Rotate(creds)

	return r
}

// Credentials returns a copy of the current credentials.
func (r *RotatingCredentials) Credentials() Credentials {
	c := r.current.Load()
	if c == nil {
		return Credentials{}
	}

	return c.clone()
}

// Rotate atomically replaces the current credentials with a copy of creds.
func (r *RotatingCredentials) Rotate(creds Credentials) {
	c := creds.clone()
	r.current.Store(&c)
}
