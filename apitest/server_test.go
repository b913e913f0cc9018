package apitest

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitalvas/forthecity/collection"
	"github.com/vitalvas/forthecity/hawk"
)

var testCreds = hawk.Credentials{
	ID:        "dh37fgj492je",
	Key:       []byte("werxhqb98rpaxn39848xrunpaw3489ruxnpa98w4rxn"),
	Algorithm: hawk.AlgorithmSHA256,
}

func send(t *testing.T, srv *Server, method, path string, body []byte, cfg hawk.SignConfig) *http.Response {
	t.Helper()

	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, srv.URL+path, r)
	require.NoError(t, err)

	req.Header.Set("api-version", "1")
	req.Header.Set("Accept", collection.MediaType)
	if body != nil {
		req.Header.Set("Content-Type", collection.MediaType)
	}

	if cfg.Credentials == nil {
		cfg.Credentials = hawk.StaticCredentials(testCreds)
	}

	_, err = hawk.SignRequest(req, cfg)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func readDocument(t *testing.T, resp *http.Response) *collection.Document {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	doc, err := collection.Parse(body)
	require.NoError(t, err)

	return doc
}

func TestServerAuthentication(t *testing.T) {
	t.Run("signed request is accepted", func(t *testing.T) {
		srv := NewServer(testCreds)
		defer srv.Close()

		resp := send(t, srv, http.MethodGet, "/api/opportunities/1", nil, hawk.SignConfig{})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, collection.MediaType, resp.Header.Get("Content-Type"))

		obj, err := readDocument(t, resp).First()
		require.NoError(t, err)
		assert.Equal(t, "1", obj["id"])
		assert.Equal(t, srv.URL+"/api/opportunities/1", obj.Href())

		rec, ok := srv.LastRequest()
		require.True(t, ok)
		assert.Equal(t, "/api/opportunities/1", rec.Path)
		assert.Equal(t, testCreds.ID, rec.Authorization.ID)
	})

	t.Run("missing header", func(t *testing.T) {
		srv := NewServer(testCreds)
		defer srv.Close()

		resp, err := srv.Client().Get(srv.URL + "/api/opportunities")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Empty(t, srv.Requests())
	})

	t.Run("wrong key", func(t *testing.T) {
		srv := NewServer(testCreds)
		defer srv.Close()

		other := testCreds
		other.Key = []byte("not the key")

		resp := send(t, srv, http.MethodGet, "/api/opportunities", nil, hawk.SignConfig{
			Credentials: hawk.StaticCredentials(other),
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		failure := readDocument(t, resp).Failure()
		require.NotNil(t, failure)
		assert.Equal(t, "Unauthorized", failure.Title)
		assert.Equal(t, collection.NumericCode(401), failure.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		srv := NewServer(testCreds)
		defer srv.Close()

		other := testCreds
		other.ID = "someone-else"

		resp := send(t, srv, http.MethodGet, "/api/opportunities", nil, hawk.SignConfig{
			Credentials: hawk.StaticCredentials(other),
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("replayed nonce", func(t *testing.T) {
		srv := NewServer(testCreds)
		defer srv.Close()

		cfg := hawk.SignConfig{Nonce: "fixed-nonce"}

		first := send(t, srv, http.MethodGet, "/api/opportunities", nil, cfg)
		assert.Equal(t, http.StatusOK, first.StatusCode)

		second := send(t, srv, http.MethodGet, "/api/opportunities", nil, cfg)
		assert.Equal(t, http.StatusUnauthorized, second.StatusCode)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		srv := NewServer(testCreds)
		defer srv.Close()

		resp := send(t, srv, http.MethodGet, "/api/opportunities", nil, hawk.SignConfig{
			Timestamp: time.Now().Add(-time.Hour),
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("payload hash is checked", func(t *testing.T) {
		srv := NewServer(testCreds)
		defer srv.Close()

		body, err := collection.NewTemplate(collection.Value("email", "new@example.com")).Body()
		require.NoError(t, err)

		resp := send(t, srv, http.MethodPost, "/api/admin/users", body, hawk.SignConfig{HashPayload: true})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		rec, ok := srv.LastRequest()
		require.True(t, ok)
		assert.NotEmpty(t, rec.Authorization.Hash)
		assert.Equal(t, body, rec.Body)
	})

	t.Run("api-version is required", func(t *testing.T) {
		srv := NewServer(testCreds)
		defer srv.Close()

		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/opportunities", nil)
		require.NoError(t, err)

		_, err = hawk.SignRequest(req, hawk.SignConfig{Credentials: hawk.StaticCredentials(testCreds)})
		require.NoError(t, err)

		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestServerRoutes(t *testing.T) {
	srv := NewServer(testCreds)
	defer srv.Close()

	t.Run("unknown opportunity", func(t *testing.T) {
		resp := send(t, srv, http.MethodGet, "/api/opportunities/10000", nil, hawk.SignConfig{})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		assert.Equal(t, &collection.Error{
			Title:   "Not found",
			Code:    collection.NumericCode(404),
			Message: "Opportunity not found",
		}, readDocument(t, resp).Failure())
	})

	t.Run("search filters", func(t *testing.T) {
		resp := send(t, srv, http.MethodGet, "/api/search?q=foster%20care&issues[]=Hunger&issues[]=Children%2FYouth", nil, hawk.SignConfig{})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		objs := readDocument(t, resp).Objects()
		require.Len(t, objs, 2)
		assert.Equal(t, "1", objs[0]["id"])
		assert.Equal(t, "3", objs[1]["id"])
	})

	t.Run("signup template", func(t *testing.T) {
		resp := send(t, srv, http.MethodGet, "/api/opportunities/1/signup", nil, hawk.SignConfig{})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		tmpl := readDocument(t, resp).Template()
		require.NotNil(t, tmpl)

		d, ok := tmpl.Get("email")
		require.True(t, ok)
		assert.Equal(t, "Email", d.Prompt)
	})

	t.Run("signup outside the default city", func(t *testing.T) {
		body, err := collection.NewTemplate(collection.Value("email", "a@example.com")).Body()
		require.NoError(t, err)

		resp := send(t, srv, http.MethodPost, "/api/opportunities/2/signup", body, hawk.SignConfig{})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp = send(t, srv, http.MethodPost, "/api/opportunities/2/signup?city=Waco", body, hawk.SignConfig{})
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	})

	t.Run("feature and unfeature", func(t *testing.T) {
		resp := send(t, srv, http.MethodPut, "/api/admin/users/1/opportunities/featured/2", nil, hawk.SignConfig{})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = send(t, srv, http.MethodGet, "/api/admin/users/1/opportunities/featured", nil, hawk.SignConfig{})
		objs := readDocument(t, resp).Objects()
		require.Len(t, objs, 1)
		assert.Equal(t, "2", objs[0]["id"])

		resp = send(t, srv, http.MethodDelete, "/api/admin/users/1/opportunities/featured/2", nil, hawk.SignConfig{})
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = send(t, srv, http.MethodGet, "/api/admin/users/1/opportunities/featured", nil, hawk.SignConfig{})
		assert.Empty(t, readDocument(t, resp).Objects())
	})
}
