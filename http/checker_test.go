package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/schemamark/schemamark"
	schemahttp "github.com/schemamark/schemamark/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves the given path->body map, substituting {{BASE}}
// with the server's own URL so fixtures can reference absolute URLs.
func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestChecker_CheckURL(t *testing.T) {
	t.Parallel()

	t.Run("passes for responding URL", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/page": "<html></html>"})

		checker := schemahttp.NewChecker(schemahttp.WithClient(srv.Client()))
		err := checker.CheckURL(context.Background(), srv.URL+"/page")

		assert.NoError(t, err)
	})

	t.Run("returns EUNREACHABLE for 404", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{})

		checker := schemahttp.NewChecker(schemahttp.WithClient(srv.Client()))
		err := checker.CheckURL(context.Background(), srv.URL+"/missing")

		assert.Equal(t, schemamark.EUNREACHABLE, schemamark.ErrorCode(err))
	})

	t.Run("returns EUNREACHABLE for unresolvable host", func(t *testing.T) {
		t.Parallel()

		checker := schemahttp.NewChecker()
		err := checker.CheckURL(context.Background(), "https://does-not-resolve.invalid/")

		assert.Equal(t, schemamark.EUNREACHABLE, schemamark.ErrorCode(err))
	})

	t.Run("falls back to GET when HEAD is rejected", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		t.Cleanup(srv.Close)

		checker := schemahttp.NewChecker(schemahttp.WithClient(srv.Client()))
		err := checker.CheckURL(context.Background(), srv.URL)

		assert.NoError(t, err)
	})

	t.Run("treats 403 as reachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		t.Cleanup(srv.Close)

		checker := schemahttp.NewChecker(schemahttp.WithClient(srv.Client()))
		err := checker.CheckURL(context.Background(), srv.URL)

		assert.NoError(t, err)
	})

	t.Run("returns EUNREACHABLE for server errors", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		checker := schemahttp.NewChecker(schemahttp.WithClient(srv.Client()))
		err := checker.CheckURL(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, schemamark.EUNREACHABLE, schemamark.ErrorCode(err))
	})
}
