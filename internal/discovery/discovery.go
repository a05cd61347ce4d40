package discovery

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/mauroociappinaph/webaudit/internal/config"
	"github.com/mauroociappinaph/webaudit/internal/ranking"
	"github.com/sirupsen/logrus"
)

// Metadata describes a discovery pass: per-source counts and the
// coverage estimate. Purely descriptive.
type Metadata struct {
	SitemapCount    int     `json:"sitemap_count"`
	HomepageCount   int     `json:"homepage_count"`
	CatalogCount    int     `json:"catalog_count"`
	TotalDiscovered int     `json:"total_discovered"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// Result is the outcome of DiscoverPages
type Result struct {
	AllPages         []Candidate
	PrioritizedPages []ranking.RankedPage
	Metadata         Metadata
}

// Discoverer finds the URLs belonging to a site from sitemap files,
// the homepage link graph, and a curated fallback catalog.
type Discoverer struct {
	client           *http.Client
	ranker           *ranking.Ranker
	sitemapLimit     int
	homepageLimit    int
	minDiscovered    int
	discoveryTimeout time.Duration
}

// NewDiscoverer creates a discoverer configured from cfg
func NewDiscoverer(cfg *config.Config, ranker *ranking.Ranker) *Discoverer {
	timeout := time.Duration(cfg.DiscoveryTimeoutMs) * time.Millisecond
	return &Discoverer{
		client:           &http.Client{Timeout: timeout},
		ranker:           ranker,
		sitemapLimit:     cfg.SitemapURLLimit,
		homepageLimit:    cfg.HomepageLinkLimit,
		minDiscovered:    cfg.MinDiscoveredPages,
		discoveryTimeout: timeout,
	}
}

// strategy is one ordered discovery method. Each runs only while the
// pool holds less than the sufficient-evidence threshold, which makes
// the sitemap-then-homepage fallthrough an inspectable policy instead
// of implicit control flow.
type strategy struct {
	name   string
	source Source
	run    func(ctx context.Context, base *url.URL) []string
}

// DiscoverPages runs every discovery strategy in order, unions in the
// default catalog, deduplicates, and ranks the merged set. The only
// error it can return is an invalid base URL; source failures are
// absorbed and reported as zero evidence.
func (d *Discoverer) DiscoverPages(ctx context.Context, baseURL string) (*Result, error) {
	base, err := ParseBase(baseURL)
	if err != nil {
		return nil, err
	}

	pool := NewCandidatePool()

	strategies := []strategy{
		{name: "sitemap", source: SourceSitemap, run: d.DiscoverFromSitemap},
		{name: "homepage", source: SourceHomepage, run: d.DiscoverFromHomepage},
	}

	for _, s := range strategies {
		if pool.Len() >= d.minDiscovered {
			logrus.Infof("Discovery: skipping %s, already have %d pages (threshold %d)",
				s.name, pool.Len(), d.minDiscovered)
			continue
		}

		added := 0
		for _, candidate := range s.run(ctx, base) {
			if pool.Add(candidate, s.source) {
				added++
			}
		}
		logrus.Infof("Discovery: %s contributed %d new pages", s.name, added)
	}

	// The catalog is always unioned in as a low-cost, high-recall
	// fallback, so total discovery failure still yields an audit.
	for _, candidate := range CatalogPages(base) {
		pool.Add(candidate, SourceCatalog)
	}

	all := pool.Snapshot()
	urls := make([]string, len(all))
	for i, c := range all {
		urls[i] = c.URL
	}

	meta := Metadata{
		SitemapCount:    pool.CountBySource(SourceSitemap),
		HomepageCount:   pool.CountBySource(SourceHomepage),
		CatalogCount:    pool.CountBySource(SourceCatalog),
		TotalDiscovered: len(all),
		CoveragePercent: EstimateCoverage(len(all)),
	}

	logrus.Infof("Discovery complete: %d pages (sitemap=%d, homepage=%d, catalog=%d, coverage=%.1f%%)",
		meta.TotalDiscovered, meta.SitemapCount, meta.HomepageCount, meta.CatalogCount, meta.CoveragePercent)

	return &Result{
		AllPages:         all,
		PrioritizedPages: d.ranker.Rank(urls),
		Metadata:         meta,
	}, nil
}
