package analyzer

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// LinksResult reports link health for one page
type LinksResult struct {
	InternalLinks int      `json:"internal_links"`
	ExternalLinks int      `json:"external_links"`
	CheckedLinks  int      `json:"checked_links"`
	BrokenLinks   int      `json:"broken_links"`
	BrokenURLs    []string `json:"broken_urls,omitempty"`
	Score         int      `json:"score"`
}

// AuditScore implements Scored
func (r LinksResult) AuditScore() int { return r.Score }

// Links extracts a page's anchors and verifies a bounded sample of
// them. Checks run sequentially; the whole audit is paced by the
// scheduler and parallel fan-out here would defeat that.
type Links struct {
	client   *http.Client
	checkCap int
}

// NewLinks creates the link-health analyzer. checkCap bounds how many
// distinct links get verified per page.
func NewLinks(timeout time.Duration, checkCap int) *Links {
	return &Links{
		client:   &http.Client{Timeout: timeout},
		checkCap: checkCap,
	}
}

// Name implements Analyzer
func (a *Links) Name() string { return "links" }

// Analyze implements Analyzer
func (a *Links) Analyze(ctx context.Context, target *Target) (any, error) {
	base, err := url.Parse(target.URL)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var toCheck []string
	result := LinksResult{}

	target.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := strings.TrimSpace(s.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") ||
			strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil || (resolved.Scheme != "http" && resolved.Scheme != "https") {
			return
		}

		if sameHost(base, resolved) {
			result.InternalLinks++
		} else {
			result.ExternalLinks++
		}

		link := resolved.String()
		if !seen[link] && len(toCheck) < a.checkCap {
			seen[link] = true
			toCheck = append(toCheck, link)
		}
	})

	for _, link := range toCheck {
		if ctx.Err() != nil {
			break
		}
		result.CheckedLinks++
		if !a.checkLink(ctx, link) {
			result.BrokenLinks++
			result.BrokenURLs = append(result.BrokenURLs, link)
		}
	}

	if result.CheckedLinks > 0 {
		result.Score = (result.CheckedLinks - result.BrokenLinks) * 100 / result.CheckedLinks
	} else {
		result.Score = 100
	}
	return result, nil
}

// checkLink tests one link with HEAD, falling back to GET when HEAD is
// not allowed. 2xx and 3xx count as accessible.
func (a *Links) checkLink(ctx context.Context, link string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err == nil {
		resp.Body.Close()
		if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
			return a.checkWithGet(ctx, link)
		}
		return resp.StatusCode < 400
	}

	logrus.Debugf("HEAD failed for %s, retrying with GET: %v", link, err)
	return a.checkWithGet(ctx, link)
}

func (a *Links) checkWithGet(ctx context.Context, link string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}

// sameHost treats www.example.com and example.com as the same site
func sameHost(a, b *url.URL) bool {
	trim := func(u *url.URL) string {
		return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	}
	return trim(a) == trim(b)
}
