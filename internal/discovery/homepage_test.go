package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscoverFromHomepage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body>
			<a href="/contact">Contact</a>
			<a href="/about">About</a>
			<a href="/about">About again</a>
			<a href="/brochure.pdf">Download</a>
			<a href="https://twitter.com/acme">Twitter</a>
			<a href="mailto:hi@acme.com">Mail</a>
			<a href="/search?session=abcdefghijklmnopqrstuvwxyz123456">Search</a>
		</body></html>`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	d := testDiscoverer(t)
	links := d.DiscoverFromHomepage(context.Background(), mustParse(t, server.URL))

	assert.ElementsMatch(t, []string{
		server.URL + "/contact",
		server.URL + "/about",
	}, links)
}

func TestDiscoverFromHomepageFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	d := testDiscoverer(t)
	links := d.DiscoverFromHomepage(context.Background(), mustParse(t, server.URL))
	assert.Empty(t, links)
}

func TestDiscoverFromHomepageCapsAtLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		var b strings.Builder
		b.WriteString("<html><body>")
		for i := 0; i < 100; i++ {
			fmt.Fprintf(&b, `<a href="/page-%d">p%d</a>`, i, i)
		}
		b.WriteString("</body></html>")
		fmt.Fprint(w, b.String())
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	d := testDiscoverer(t)
	links := d.DiscoverFromHomepage(context.Background(), mustParse(t, server.URL))
	assert.Len(t, links, 30)
}
