// Package apitest runs an in-process API server for tests.
//
// The server speaks Collection+JSON, checks every request's Hawk
// Authorization header against the configured credentials and rejects
// replayed nonces, so client code can be exercised end to end:
//
//	srv := apitest.NewServer(creds)
//	defer srv.Close()
//
//	client, err := apiclient.New(apiclient.Config{Host: srv.URL, ...})
//
// Routes can be added with Router for cases the fixtures do not cover.
package apitest
