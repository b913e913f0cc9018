package hawk

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/idna"
)

// Header version and normalized string kinds.
const (
	headerVersion = "1"

	// KindHeader is the normalized string kind for Authorization headers.
	KindHeader = "header"

	// KindResponse is the normalized string kind for Server-Authorization
	// headers.
	KindResponse = "response"
)

// Artifacts hold every request field covered by the MAC.
type Artifacts struct {
	Method    string
	Resource  string
	Host      string
	Port      int
	Timestamp int64
	Nonce     string
	Hash      string
	Ext       string
}

// NewArtifacts derives the signed fields of a request. rawURL must be
// absolute; the resource is its path and query, the host is lowercased and
// mapped to ASCII, and the port defaults by scheme.
//
// The method is upper-cased, so "get" and "GET" canonicalize identically.
// HTTP methods are sent upper-case and the server normalizes the same way;
// methods that differ other than by case always canonicalize differently.
func NewArtifacts(method, rawURL string, ts time.Time, nonce, ext string) (Artifacts, error) {
	if method == "" {
		return Artifacts{}, fmt.Errorf("%w: method must not be empty", ErrInvalidRequestSpec)
	}

	if rawURL == "" {
		return Artifacts{}, fmt.Errorf("%w: url must not be empty", ErrInvalidRequestSpec)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Artifacts{}, fmt.Errorf("%w: %v", ErrInvalidRequestSpec, err)
	}

	return artifactsFromURL(method, u, ts, nonce, ext)
}

func artifactsFromURL(method string, u *url.URL, ts time.Time, nonce, ext string) (Artifacts, error) {
	if method == "" {
		return Artifacts{}, fmt.Errorf("%w: method must not be empty", ErrInvalidRequestSpec)
	}

	if !u.IsAbs() || u.Hostname() == "" {
		return Artifacts{}, fmt.Errorf("%w: url must be absolute", ErrInvalidRequestSpec)
	}

	port, err := portOf(u)
	if err != nil {
		return Artifacts{}, err
	}

	return Artifacts{
		Method:    strings.ToUpper(method),
		Resource:  resourceOf(u),
		Host:      canonicalHost(u.Hostname()),
		Port:      port,
		Timestamp: ts.Unix(),
		Nonce:     nonce,
		Ext:       ext,
	}, nil
}

// Normalized returns the string the MAC is computed over:
//
//	hawk.1.<kind>\n<ts>\n<nonce>\n<METHOD>\n<resource>\n<host>\n<port>\n<hash>\n<ext>\n
//
// Backslashes and newlines inside ext are escaped so that every field
// stays on its own line.
func (a Artifacts) Normalized(kind string) string {
	var b strings.Builder

	b.WriteString("hawk.")
	b.WriteString(headerVersion)
	b.WriteByte('.')
	b.WriteString(kind)
	b.WriteByte('\n')

	b.WriteString(strconv.FormatInt(a.Timestamp, 10))
	b.WriteByte('\n')
	b.WriteString(a.Nonce)
	b.WriteByte('\n')
	b.WriteString(strings.ToUpper(a.Method))
	b.WriteByte('\n')
	b.WriteString(a.Resource)
	b.WriteByte('\n')
	b.WriteString(strings.ToLower(a.Host))
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(a.Port))
	b.WriteByte('\n')
	b.WriteString(a.Hash)
	b.WriteByte('\n')

	if a.Ext != "" {
		b.WriteString(escapeExt(a.Ext))
	}
	b.WriteByte('\n')

	return b.String()
}

// PayloadHash returns the Hawk payload hash of a request body.
// Parameters of contentType (";charset=...") are ignored.
func PayloadHash(alg Algorithm, contentType string, payload []byte) (string, error) {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	var b strings.Builder
	b.WriteString("hawk.")
	b.WriteString(headerVersion)
	b.WriteString(".payload\n")
	b.WriteString(mediaType)
	b.WriteByte('\n')
	b.Write(payload)
	b.WriteByte('\n')

	return alg.Sum([]byte(b.String()))
}

var extEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

func escapeExt(ext string) string {
	return extEscaper.Replace(ext)
}

func resourceOf(u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	if u.RawQuery != "" {
		return path + "?" + u.RawQuery
	}

	return path
}

func portOf(u *url.URL) (int, error) {
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return 0, fmt.Errorf("%w: invalid port %q", ErrInvalidRequestSpec, p)
		}

		return port, nil
	}

	switch strings.ToLower(u.Scheme) {
	case "https", "wss":
		return 443, nil
	case "http", "ws":
		return 80, nil
	default:
		return 0, fmt.Errorf("%w: no default port for scheme %q", ErrInvalidRequestSpec, u.Scheme)
	}
}

// canonicalHost lowercases host and converts internationalized names to
// their ASCII form. IP literals and names idna rejects are only lowercased.
func canonicalHost(host string) string {
	if net.ParseIP(host) != nil {
		return strings.ToLower(host)
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return strings.ToLower(host)
	}

	return strings.ToLower(ascii)
}
