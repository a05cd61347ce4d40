package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "webaudit-bot/0.1 (+https://github.com/mauroociappinaph/webaudit)"

const maxBodySize = 4 << 20 // 4MiB cap for analysis

// Analyzer is one per-page check. Analyze returns an opaque result
// object recorded under Name in the page's check bag, or an error that
// marks the whole page failed.
type Analyzer interface {
	Name() string
	Analyze(ctx context.Context, target *Target) (any, error)
}

// Scored is implemented by analyzer results that report a 0-100 score
type Scored interface {
	AuditScore() int
}

// CriticalCounter is implemented by analyzer results that can flag
// critical issues on a page
type CriticalCounter interface {
	CriticalIssueCount() int
}

// Target is one fetched page shared by every analyzer in a tier, so a
// page is downloaded once per audit regardless of tier.
type Target struct {
	URL          string
	StatusCode   int
	Headers      http.Header
	Body         []byte
	Doc          *goquery.Document
	ResponseTime time.Duration
}

// Fetcher retrieves pages for analysis
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the given per-request timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    20,
				IdleConnTimeout: 30 * time.Second,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 5 * time.Second,
			},
			Timeout: timeout,
		},
	}
}

// Fetch downloads a page once and parses it for the analyzers. Any
// HTTP response, including error statuses, produces a Target; only
// transport failures return an error, so availability checks can still
// score broken pages.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Target, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", pageURL, err)
	}
	elapsed := time.Since(start)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	return &Target{
		URL:          pageURL,
		StatusCode:   resp.StatusCode,
		Headers:      resp.Header,
		Body:         body,
		Doc:          doc,
		ResponseTime: elapsed,
	}, nil
}
