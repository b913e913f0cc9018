package hawk

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"hash"
)

// Algorithm identifies the HMAC hash used for request MACs.
type Algorithm string

const (
	// AlgorithmSHA256 is HMAC using SHA-256. It is the default.
	AlgorithmSHA256 Algorithm = "sha256"

	// AlgorithmSHA1 is HMAC using SHA-1.
	AlgorithmSHA1 Algorithm = "sha1"
)

// String returns the algorithm tag as it appears in configuration.
func (a Algorithm) String() string {
	return string(a)
}

// Supported reports whether the algorithm can be used for signing.
func (a Algorithm) Supported() bool {
	_, err := a.hash()
	return err == nil
}

func (a Algorithm) hash() (func() hash.Hash, error) {
	switch a {
	case AlgorithmSHA256:
		return sha256.New, nil
	case AlgorithmSHA1:
		return sha1.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(a))
	}
}

// Sum returns the base64 encoded plain digest of message. It is used for
// payload hashes.
func (a Algorithm) Sum(message []byte) (string, error) {
	newHash, err := a.hash()
	if err != nil {
		return "", err
	}

	h := newHash()
	h.Write(message)

	return base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

// MAC returns the base64 encoded HMAC of message keyed by key.
func (a Algorithm) MAC(key, message []byte) (string, error) {
	newHash, err := a.hash()
	if err != nil {
		return "", err
	}

	m := hmac.New(newHash, key)
	m.Write(message)

	return base64.StdEncoding.EncodeToString(m.Sum(nil)), nil
}

// Verify checks a base64 encoded tag against message in constant time.
// Returns nil on success, ErrMACMismatch otherwise.
func (a Algorithm) Verify(key, message []byte, tag string) error {
	expected, err := a.MAC(key, message)
	if err != nil {
		return err
	}

	if !hmac.Equal([]byte(expected), []byte(tag)) {
		return ErrMACMismatch
	}

	return nil
}
