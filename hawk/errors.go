package hawk

import "errors"

// Request errors. These are raised before any network I/O happens.
var (
	// ErrInvalidRequestSpec is returned when the method or URL of a request
	// is missing, or the URL is not absolute.
	ErrInvalidRequestSpec = errors.New("hawk: invalid request")

	// ErrMissingCredentials is returned when the credentials have no id or
	// no key.
	ErrMissingCredentials = errors.New("hawk: missing credentials")

	// ErrUnknownAlgorithm is returned when the credentials name an algorithm
	// that is not supported.
	ErrUnknownAlgorithm = errors.New("hawk: unknown algorithm")

	// ErrNoCredentials is returned when SignConfig has no credentials
	// provider configured.
	ErrNoCredentials = errors.New("hawk: credentials provider must not be nil")
)

// Verification errors.
var (
	// ErrMACMismatch is returned by Algorithm.Verify when a tag does not
	// match.
	ErrMACMismatch = errors.New("hawk: mac mismatch")

	// ErrMalformedHeader is returned when an Authorization header cannot be
	// parsed.
	ErrMalformedHeader = errors.New("hawk: malformed header")
)
