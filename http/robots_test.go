package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/fwojciec/bfscrawl"
	bfshttp "github.com/fwojciec/bfscrawl/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobotsSource_FetchRobots(t *testing.T) {
	t.Parallel()

	t.Run("returns robots.txt body", func(t *testing.T) {
		t.Parallel()

		var path, ua string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			ua = r.UserAgent()
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
		}))
		defer server.Close()
		u, err := url.Parse(server.URL)
		require.NoError(t, err)

		body, err := bfshttp.NewRobotsSource().FetchRobots(context.Background(), u.Scheme, u.Host)

		require.NoError(t, err)
		assert.Equal(t, "User-agent: *\nDisallow: /private/\n", string(body))
		assert.Equal(t, "/robots.txt", path)
		assert.Equal(t, bfscrawl.DefaultUserAgent, ua)
	})

	t.Run("maps status codes to error codes", func(t *testing.T) {
		t.Parallel()

		for status, code := range map[int]string{
			http.StatusNotFound:            bfscrawl.ENOTFOUND,
			http.StatusForbidden:           bfscrawl.ENOTFOUND,
			http.StatusInternalServerError: bfscrawl.EUNAVAILABLE,
		} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			u, err := url.Parse(server.URL)
			require.NoError(t, err)

			_, err = bfshttp.NewRobotsSource().FetchRobots(context.Background(), u.Scheme, u.Host)
			server.Close()

			require.Error(t, err)
			assert.Equal(t, code, bfscrawl.ErrorCode(err), status)
		}
	})
}
