package analyzer

import (
	"context"
	"time"
)

// UptimeResult reports basic availability of a page
type UptimeResult struct {
	StatusCode     int   `json:"status_code"`
	ResponseTimeMs int64 `json:"response_time_ms"`
	Available      bool  `json:"available"`
	Score          int   `json:"score"`
}

// AuditScore implements Scored
func (r UptimeResult) AuditScore() int { return r.Score }

// CriticalIssueCount implements CriticalCounter; an unreachable or
// server-erroring page is a critical issue.
func (r UptimeResult) CriticalIssueCount() int {
	if !r.Available {
		return 1
	}
	return 0
}

// Uptime scores page availability from the shared fetch, without any
// extra network round-trip.
type Uptime struct{}

// NewUptime creates the availability analyzer
func NewUptime() *Uptime { return &Uptime{} }

// Name implements Analyzer
func (a *Uptime) Name() string { return "uptime" }

// Analyze implements Analyzer
func (a *Uptime) Analyze(_ context.Context, target *Target) (any, error) {
	result := UptimeResult{
		StatusCode:     target.StatusCode,
		ResponseTimeMs: target.ResponseTime.Milliseconds(),
	}

	switch {
	case target.StatusCode >= 200 && target.StatusCode < 300:
		result.Available = true
		result.Score = 100
	case target.StatusCode >= 300 && target.StatusCode < 400:
		result.Available = true
		result.Score = 80
	case target.StatusCode >= 400 && target.StatusCode < 500:
		result.Score = 20
	default:
		result.Score = 0
	}

	// Slow responses degrade the score even when the page is up
	if result.Available {
		switch {
		case target.ResponseTime > 3*time.Second:
			result.Score -= 20
		case target.ResponseTime > 1500*time.Millisecond:
			result.Score -= 10
		}
		if result.Score < 0 {
			result.Score = 0
		}
	}

	return result, nil
}
