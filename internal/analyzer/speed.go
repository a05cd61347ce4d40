package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// SpeedResult is the distilled response of the external speed-audit
// service for one page
type SpeedResult struct {
	Score                  int     `json:"score"`
	FirstContentfulPaintMs float64 `json:"first_contentful_paint_ms"`
	LargestContentfulMs    float64 `json:"largest_contentful_paint_ms"`
	TotalBlockingMs        float64 `json:"total_blocking_ms"`
}

// AuditScore implements Scored
func (r SpeedResult) AuditScore() int { return r.Score }

// Speed calls a PageSpeed-style HTTP API for a performance score.
// Unlike the local checks this analyzer can genuinely fail (quota,
// network, malformed response); the error propagates and marks the
// page failed, which the scheduler absorbs at the page boundary.
type Speed struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewSpeed creates the external speed-audit client
func NewSpeed(endpoint, apiKey string, timeout time.Duration) *Speed {
	return &Speed{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// Name implements Analyzer
func (a *Speed) Name() string { return "speed" }

// pagespeedResponse matches the subset of the API response we consume
type pagespeedResponse struct {
	LighthouseResult struct {
		Categories struct {
			Performance struct {
				Score float64 `json:"score"`
			} `json:"performance"`
		} `json:"categories"`
		Audits map[string]struct {
			NumericValue float64 `json:"numericValue"`
		} `json:"audits"`
	} `json:"lighthouseResult"`
}

// Analyze implements Analyzer
func (a *Speed) Analyze(ctx context.Context, target *Target) (any, error) {
	query := url.Values{}
	query.Set("url", target.URL)
	query.Set("strategy", "mobile")
	if a.apiKey != "" {
		query.Set("key", a.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build speed-audit request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speed-audit call for %s: %w", target.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speed-audit returned status %d for %s", resp.StatusCode, target.URL)
	}

	var parsed pagespeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode speed-audit response for %s: %w", target.URL, err)
	}

	result := SpeedResult{
		// The API reports performance as 0-1
		Score: int(parsed.LighthouseResult.Categories.Performance.Score * 100),
	}
	if audit, ok := parsed.LighthouseResult.Audits["first-contentful-paint"]; ok {
		result.FirstContentfulPaintMs = audit.NumericValue
	}
	if audit, ok := parsed.LighthouseResult.Audits["largest-contentful-paint"]; ok {
		result.LargestContentfulMs = audit.NumericValue
	}
	if audit, ok := parsed.LighthouseResult.Audits["total-blocking-time"]; ok {
		result.TotalBlockingMs = audit.NumericValue
	}

	return result, nil
}
