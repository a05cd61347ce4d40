package discovery

import (
	"context"
	"net/url"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// Query strings or fragments longer than this usually encode session
// or tracking state rather than distinct content
const maxQueryLen = 25

// URLs longer than this are almost never real navigation targets
const maxURLLen = 160

// DiscoverFromHomepage fetches the homepage once and extracts
// same-origin anchor targets, deduplicated and capped at the configured
// limit. The fetch uses the generous discovery timeout since the first
// request pays the site's warm-up cost. A failed fetch is absorbed and
// yields an empty result.
func (d *Discoverer) DiscoverFromHomepage(ctx context.Context, base *url.URL) []string {
	if ctx.Err() != nil {
		return nil
	}

	collector := colly.NewCollector()
	collector.SetRequestTimeout(d.discoveryTimeout)

	seen := make(map[string]bool)
	var links []string

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		if len(links) >= d.homepageLimit {
			return
		}

		normalized, ok := Normalize(e.Attr("href"), base)
		if !ok {
			return
		}
		if len(normalized) > maxURLLen {
			return
		}

		parsed, err := url.Parse(normalized)
		if err != nil {
			return
		}
		if len(parsed.RawQuery) > maxQueryLen || len(parsed.Fragment) > maxQueryLen {
			return
		}

		if seen[normalized] {
			return
		}
		seen[normalized] = true
		links = append(links, normalized)
	})

	collector.OnError(func(r *colly.Response, err error) {
		logrus.Warnf("Homepage fetch failed for %s: %v", base.String(), err)
	})

	if err := collector.Visit(base.String()); err != nil {
		logrus.Warnf("Homepage visit failed for %s: %v", base.String(), err)
		return nil
	}
	collector.Wait()

	logrus.Infof("Homepage yielded %d internal links", len(links))
	return links
}
