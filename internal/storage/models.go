package storage

import "time"

// AuditRun is one persisted audit of a site
type AuditRun struct {
	AuditID         int
	BaseURL         string
	Mode            string
	TotalPages      int
	FailedPages     int
	AverageScore    float64
	CoveragePercent float64
	CreatedAt       time.Time
}

// PageRow is one persisted per-page result belonging to an audit run
type PageRow struct {
	ResultID       int
	AuditID        int
	URL            string
	Level          string
	Success        bool
	Score          int
	AnalysisTimeMs int64
	Error          string
}

// Metrics tracks run statistics for export on exit
type Metrics struct {
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	PagesDiscovered     int       `json:"pages_discovered"`
	PagesAnalyzed       int       `json:"pages_analyzed"`
	PagesFailed         int       `json:"pages_failed"`
	FullAnalyses        int       `json:"full_analyses"`
	StandardAnalyses    int       `json:"standard_analyses"`
	LightAnalyses       int       `json:"light_analyses"`
	TotalAnalysisTimeMs int64     `json:"total_analysis_time_ms"`
	AvgAnalysisTimeMs   int64     `json:"avg_analysis_time_ms"`
	TerminationReason   string    `json:"termination_reason"`
}
