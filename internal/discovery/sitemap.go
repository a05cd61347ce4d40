package discovery

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Conventional sitemap locations, tried in order. First parseable
// document with at least one <url><loc> entry wins.
var sitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap-index.xml",
	"/wp-sitemap.xml",
	"/page-sitemap.xml",
}

const maxSitemapBody = 4 << 20 // 4MiB cap per sitemap document

type locEntry struct {
	Loc string `xml:"loc"`
}

// sitemapDoc matches both <urlset> and <sitemapindex> roots
type sitemapDoc struct {
	URLs     []locEntry `xml:"url"`
	Sitemaps []locEntry `xml:"sitemap"`
}

// DiscoverFromSitemap probes the conventional sitemap locations for the
// site and returns validated page URLs from the first sitemap that
// yields any, capped at the configured limit. Every failure is absorbed
// here; an empty result means zero evidence from this source, not an
// error of the caller.
func (d *Discoverer) DiscoverFromSitemap(ctx context.Context, base *url.URL) []string {
	for _, path := range sitemapPaths {
		candidate := base.Scheme + "://" + base.Host + path

		urls, err := d.fetchSitemap(ctx, base, candidate)
		if err != nil {
			logrus.Debugf("Sitemap candidate %s failed: %v", candidate, err)
			continue
		}
		if len(urls) == 0 {
			continue
		}

		logrus.Infof("Sitemap %s yielded %d URLs", candidate, len(urls))
		return urls
	}

	logrus.Info("No usable sitemap found")
	return nil
}

// fetchSitemap retrieves and parses a single sitemap candidate
func (d *Discoverer) fetchSitemap(ctx context.Context, base *url.URL, sitemapURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSitemapBody))
	if err != nil {
		return nil, err
	}

	var doc sitemapDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, err
	}

	// Nested sitemaps in a sitemap index are logged but not fetched;
	// recursion is out of scope for this version.
	for _, nested := range doc.Sitemaps {
		logrus.Infof("Sitemap index entry found (not fetched): %s", nested.Loc)
	}

	var urls []string
	for _, entry := range doc.URLs {
		normalized, ok := Normalize(entry.Loc, base)
		if !ok {
			continue
		}
		urls = append(urls, normalized)
		if len(urls) >= d.sitemapLimit {
			break
		}
	}

	return urls, nil
}
