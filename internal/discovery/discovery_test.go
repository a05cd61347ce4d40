package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverPagesInvalidBaseURL(t *testing.T) {
	d := testDiscoverer(t)
	_, err := d.DiscoverPages(context.Background(), "not a url")
	require.Error(t, err)
}

func TestDiscoverPagesFallbackToCatalog(t *testing.T) {
	// Both dynamic sources fail; the catalog must still produce a
	// non-empty prioritized list
	server := httptest.NewServer(http.NotFoundHandler())
	serverURL := server.URL
	server.Close() // every request now fails at the transport level

	d := testDiscoverer(t)
	result, err := d.DiscoverPages(context.Background(), serverURL)
	require.NoError(t, err)

	assert.NotEmpty(t, result.PrioritizedPages)
	assert.Equal(t, 0, result.Metadata.SitemapCount)
	assert.Equal(t, 0, result.Metadata.HomepageCount)
	assert.Equal(t, len(result.AllPages), result.Metadata.CatalogCount)
}

func TestDiscoverPagesSkipsHomepageWhenSitemapSuffices(t *testing.T) {
	var server *httptest.Server
	homepageHits := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		var paths []string
		for i := 0; i < 12; i++ {
			paths = append(paths, fmt.Sprintf("/page-%d", i))
		}
		fmt.Fprint(w, sitemapBody(server.URL, paths))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		homepageHits++
		fmt.Fprint(w, `<html><body><a href="/extra">x</a></body></html>`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	d := testDiscoverer(t)
	result, err := d.DiscoverPages(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, 0, homepageHits, "homepage should not be fetched when sitemap meets the evidence threshold")
	assert.Equal(t, 12, result.Metadata.SitemapCount)
	assert.Equal(t, 0, result.Metadata.HomepageCount)
}

func TestDiscoverPagesRunsHomepageWhenSitemapThin(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sitemapBody(server.URL, []string{"/only-page"}))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><a href="/from-homepage">x</a></body></html>`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	d := testDiscoverer(t)
	result, err := d.DiscoverPages(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Metadata.SitemapCount)
	assert.Equal(t, 1, result.Metadata.HomepageCount)
}

func TestDiscoverPagesDeduplicates(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		// /contact also appears in the default catalog
		fmt.Fprint(w, sitemapBody(server.URL, []string{"/contact", "/contact", "/unique"}))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	d := testDiscoverer(t)
	result, err := d.DiscoverPages(context.Background(), server.URL)
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, page := range result.PrioritizedPages {
		seen[page.URL]++
	}
	for pageURL, count := range seen {
		assert.Equalf(t, 1, count, "URL %s appears %d times", pageURL, count)
	}

	// First source to discover a URL owns it
	assert.Equal(t, 2, result.Metadata.SitemapCount)
}

func TestDiscoverPagesPriorityOrdering(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		var paths []string
		for i := 0; i < 15; i++ {
			paths = append(paths, fmt.Sprintf("/deep/nested/page-%d", i))
		}
		fmt.Fprint(w, sitemapBody(server.URL, paths))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	d := testDiscoverer(t)
	result, err := d.DiscoverPages(context.Background(), server.URL)
	require.NoError(t, err)
	require.NotEmpty(t, result.PrioritizedPages)

	for i := 1; i < len(result.PrioritizedPages); i++ {
		prev, cur := result.PrioritizedPages[i-1], result.PrioritizedPages[i]
		require.GreaterOrEqual(t, prev.Priority, cur.Priority)
		if prev.Priority == cur.Priority {
			require.LessOrEqual(t, prev.Depth, cur.Depth)
		}
	}
}
