package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/bfscrawl"
	bfshttp "github.com/fwojciec/bfscrawl/http"
	"github.com/fwojciec/bfscrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingExtractor returns links unchanged and captures its input.
type recordingExtractor struct {
	html    string
	baseURL string
	links   []string
}

func (e *recordingExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	e.html = html
	e.baseURL = baseURL
	return e.links, nil
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns links extracted from the body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><a href="/a">A</a></body></html>`))
		}))
		defer server.Close()

		extractor := &recordingExtractor{links: []string{server.URL + "/a"}}
		fetcher := bfshttp.NewFetcher(extractor)

		page, err := fetcher.Fetch(context.Background(), server.URL+"/")
		require.NoError(t, err)

		assert.Equal(t, server.URL+"/", page.URL)
		assert.Equal(t, []string{server.URL + "/a"}, page.Links)
		assert.Len(t, page.ContentHash, 16)
		assert.Contains(t, extractor.html, `<a href="/a">`)
		assert.Equal(t, server.URL+"/", extractor.baseURL)
	})

	t.Run("resolves against the final URL after redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new/", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		extractor := &recordingExtractor{}
		page, err := bfshttp.NewFetcher(extractor).Fetch(context.Background(), server.URL+"/old")
		require.NoError(t, err)

		assert.Equal(t, server.URL+"/new/", page.URL)
		assert.Equal(t, server.URL+"/new/", extractor.baseURL)
	})

	t.Run("decodes declared charset", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<html><body>caf\xe9</body></html>"))
		}))
		defer server.Close()

		extractor := &recordingExtractor{}
		_, err := bfshttp.NewFetcher(extractor).Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		assert.Contains(t, extractor.html, "café")
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		var ua string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.UserAgent()
			w.Header().Set("Content-Type", "text/html")
		}))
		defer server.Close()

		_, err := bfshttp.NewFetcher(&recordingExtractor{}, bfshttp.WithUserAgent("bfscrawl-test")).
			Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		assert.Equal(t, "bfscrawl-test", ua)
	})

	t.Run("returns error for non-200 status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := bfshttp.NewFetcher(&recordingExtractor{}).Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, bfscrawl.EUNAVAILABLE, bfscrawl.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("returns error for non-HTML content", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer server.Close()

		_, err := bfshttp.NewFetcher(&recordingExtractor{}).Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, bfscrawl.EINVALID, bfscrawl.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			w.Header().Set("Content-Type", "text/html")
		}))
		defer server.Close()

		fetcher := bfshttp.NewFetcher(&recordingExtractor{}, bfshttp.WithTimeout(10*time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := bfshttp.NewFetcher(&recordingExtractor{}).Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("limits body size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>0123456789</body></html>"))
		}))
		defer server.Close()

		extractor := &recordingExtractor{}
		_, err := bfshttp.NewFetcher(extractor, bfshttp.WithMaxBodySize(6)).Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		assert.Equal(t, "<html>", extractor.html)
	})

	t.Run("propagates extractor errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
		}))
		defer server.Close()

		extractor := &mock.LinkExtractor{
			ExtractLinksFn: func(string, string) ([]string, error) {
				return nil, bfscrawl.Errorf(bfscrawl.EINVALID, "broken")
			},
		}
		_, err := bfshttp.NewFetcher(extractor).Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, bfscrawl.EINVALID, bfscrawl.ErrorCode(err))
	})
}
