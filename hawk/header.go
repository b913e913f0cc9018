package hawk

import (
	"fmt"
	"strconv"
	"strings"
)

// Header is a parsed Hawk Authorization header.
type Header struct {
	ID        string
	Timestamp int64
	Nonce     string
	Hash      string
	Ext       string
	MAC       string
}

// ParseHeader parses an Authorization header value produced by Sign.
func ParseHeader(value string) (Header, error) {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok || !strings.EqualFold(scheme, Scheme) {
		return Header{}, fmt.Errorf("%w: scheme is not %s", ErrMalformedHeader, Scheme)
	}

	attrs, err := parseAttributes(rest)
	if err != nil {
		return Header{}, err
	}

	h := Header{
		ID:    attrs["id"],
		Nonce: attrs["nonce"],
		Hash:  attrs["hash"],
		Ext:   attrs["ext"],
		MAC:   attrs["mac"],
	}

	if h.ID == "" || h.Nonce == "" || h.MAC == "" || attrs["ts"] == "" {
		return Header{}, fmt.Errorf("%w: missing attributes", ErrMalformedHeader)
	}

	h.Timestamp, err = strconv.ParseInt(attrs["ts"], 10, 64)
	if err != nil {
		return Header{}, fmt.Errorf("%w: invalid ts", ErrMalformedHeader)
	}

	return h, nil
}

// parseAttributes reads a comma separated list of key="value" pairs.
// Backslash escapes inside values are resolved.
func parseAttributes(s string) (map[string]string, error) {
	attrs := make(map[string]string)

	for {
		s = strings.TrimLeft(s, " ,")
		if s == "" {
			return attrs, nil
		}

		key, rest, ok := strings.Cut(s, "=")
		if !ok || key == "" || !strings.HasPrefix(rest, `"`) {
			return nil, fmt.Errorf("%w: expected key=\"value\"", ErrMalformedHeader)
		}

		var (
			val    strings.Builder
			closed bool
			i      = 1
		)

		for ; i < len(rest); i++ {
			c := rest[i]
			if c == '\\' && i+1 < len(rest) {
				i++
				val.WriteByte(rest[i])
				continue
			}

			if c == '"' {
				closed = true
				break
			}

			val.WriteByte(c)
		}

		if !closed {
			return nil, fmt.Errorf("%w: unterminated value for %q", ErrMalformedHeader, key)
		}

		if _, dup := attrs[key]; dup {
			return nil, fmt.Errorf("%w: duplicate attribute %q", ErrMalformedHeader, key)
		}

		attrs[key] = val.String()
		s = rest[i+1:]
	}
}
