package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/vitalvas/forthecity/collection"
	"github.com/vitalvas/forthecity/hawk"
)

// Recorded is a request the server accepted.
type Recorded struct {
	Method        string
	Path          string
	RawQuery      string
	Header        http.Header
	Body          []byte
	Authorization hawk.Header
}

// Server is a fake API server backed by httptest.Server.
type Server struct {
	*httptest.Server

	creds  hawk.Credentials
	router *mux.Router

	// Skew is the accepted distance between a request timestamp and the
	// server clock. Defaults to one minute.
	Skew time.Duration

	mu       sync.Mutex
	nonces   map[string]bool
	requests []Recorded
	store    *store
}

// NewServer starts a server that accepts requests signed with creds.
func NewServer(creds hawk.Credentials) *Server {
	s := &Server{
		creds:  creds,
		router: mux.NewRouter(),
		Skew:   time.Minute,
		nonces: make(map[string]bool),
		store:  newStore(),
	}

	s.router.Use(s.authenticate)
	s.routes()

	s.Server = httptest.NewServer(s.router)

	return s
}

// Router returns the router, for registering extra routes.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Requests returns the requests accepted so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)

	return out
}

// LastRequest returns the most recent accepted request.
func (s *Server) LastRequest() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return Recorded{}, false
	}

	return s.requests[len(s.requests)-1], true
}

// authenticate verifies the Hawk header, the nonce and the api-version
// header before passing the request on.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, err := hawk.ParseHeader(r.Header.Get("Authorization"))
		if err != nil {
			WriteError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Bad request", err.Error())
			return
		}

		if err := s.verify(r, h, body); err != nil {
			WriteError(w, http.StatusUnauthorized, "Unauthorized", err.Error())
			return
		}

		if r.Header.Get("api-version") != "1" {
			WriteError(w, http.StatusBadRequest, "Bad request", "unsupported api-version")
			return
		}

		if len(body) > 0 && r.Header.Get("Content-Type") != collection.MediaType {
			WriteError(w, http.StatusUnsupportedMediaType, "Unsupported media type", r.Header.Get("Content-Type"))
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, Recorded{
			Method:        r.Method,
			Path:          r.URL.Path,
			RawQuery:      r.URL.RawQuery,
			Header:        r.Header.Clone(),
			Body:          body,
			Authorization: h,
		})
		s.mu.Unlock()

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) verify(r *http.Request, h hawk.Header, body []byte) error {
	if h.ID != s.creds.ID {
		return errUnknownID
	}

	ts := time.Unix(h.Timestamp, 0)
	if d := time.Since(ts); d > s.Skew || d < -s.Skew {
		return errStaleTimestamp
	}

	a, err := hawk.NewArtifacts(r.Method, "http://"+r.Host+r.URL.RequestURI(), ts, h.Nonce, h.Ext)
	if err != nil {
		return err
	}

	if h.Hash != "" {
		expected, err := hawk.PayloadHash(s.creds.Algorithm, r.Header.Get("Content-Type"), body)
		if err != nil {
			return err
		}

		if expected != h.Hash {
			return errPayloadHash
		}

		a.Hash = h.Hash
	}

	if err := s.creds.Algorithm.Verify(s.creds.Key, []byte(a.Normalized(hawk.KindHeader)), h.MAC); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.nonces[h.Nonce] {
		return errReplayedNonce
	}
	s.nonces[h.Nonce] = true

	return nil
}

// WriteDocument writes doc as Collection+JSON with the given status.
func WriteDocument(w http.ResponseWriter, status int, doc collection.Document) {
	if doc.Collection.Version == "" {
		doc.Collection.Version = "1.0"
	}

	w.Header().Set("Content-Type", collection.MediaType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(doc)
}

// WriteError writes a Collection+JSON error document whose code is the
// numeric status.
func WriteError(w http.ResponseWriter, status int, title, message string) {
	WriteDocument(w, status, collection.Document{Collection: collection.Collection{
		Href: "",
		Error: &collection.Error{
			Title:   title,
			Code:    collection.NumericCode(status),
			Message: message,
		},
	}})
}
