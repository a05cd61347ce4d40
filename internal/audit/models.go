package audit

import (
	"fmt"

	"github.com/mauroociappinaph/webaudit/internal/discovery"
)

// Mode selects how analysis depth is assigned across the ranked pages
type Mode string

const (
	ModeFull     Mode = "full"
	ModeStandard Mode = "standard"
	ModeLight    Mode = "light"
	ModeGradual  Mode = "gradual"
)

// ParseMode validates a mode string from configuration
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFull, ModeStandard, ModeLight, ModeGradual:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown audit mode %q", s)
}

// Level is the analysis depth a page actually received
type Level string

const (
	LevelFull     Level = "full"
	LevelStandard Level = "standard"
	LevelLight    Level = "light"
	LevelFailed   Level = "failed"
)

// PageAuditResult is the outcome for one scheduled page. A failed page
// is terminal for the run; there are no retries.
type PageAuditResult struct {
	URL            string         `json:"url"`
	Level          Level          `json:"analysis_level"`
	Success        bool           `json:"success"`
	Error          string         `json:"error,omitempty"`
	AnalysisTimeMs int64          `json:"analysis_time_ms"`
	Score          int            `json:"score"`
	HasScore       bool           `json:"has_score"`
	CriticalIssues int            `json:"critical_issues"`
	Checks         map[string]any `json:"checks,omitempty"`
}

// CriticalPage identifies a page whose results demand attention
type CriticalPage struct {
	URL    string `json:"url"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// FailedPage records a page whose analysis failed, with its error
type FailedPage struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// SiteAuditSummary aggregates all page results for reporting
type SiteAuditSummary struct {
	TotalPages         int           `json:"total_pages"`
	SuccessfulAnalyses int           `json:"successful_analyses"`
	FailedAnalyses     int           `json:"failed_analyses"`
	LevelCounts        map[Level]int `json:"level_counts"`
	AverageScore       float64       `json:"average_score"`
	ScoredPages        int           `json:"scored_pages"`
	CriticalPages      []CriticalPage `json:"critical_pages,omitempty"`
	FailedPages        []FailedPage  `json:"failed_pages,omitempty"`
	CoveragePercent    float64       `json:"coverage_percent"`
}

// Report is the full outcome of a tiered audit run
type Report struct {
	BaseURL     string             `json:"base_url"`
	Mode        Mode               `json:"mode"`
	PageResults []PageAuditResult  `json:"page_results"`
	Summary     SiteAuditSummary   `json:"summary"`
	Discovery   discovery.Metadata `json:"discovery"`
}
