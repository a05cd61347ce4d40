package audit

import "fmt"

// Summarize aggregates page results into a site-level summary. It runs
// once, after every page has been processed; the result is read-only.
func Summarize(results []PageAuditResult, coverage float64, criticalThreshold int) SiteAuditSummary {
	summary := SiteAuditSummary{
		TotalPages:      len(results),
		LevelCounts:     make(map[Level]int),
		CoveragePercent: coverage,
	}

	scoreTotal := 0
	for _, r := range results {
		summary.LevelCounts[r.Level]++

		if !r.Success {
			summary.FailedAnalyses++
			summary.FailedPages = append(summary.FailedPages, FailedPage{URL: r.URL, Error: r.Error})
			continue
		}
		summary.SuccessfulAnalyses++

		if r.HasScore {
			summary.ScoredPages++
			scoreTotal += r.Score
		}

		switch {
		case r.HasScore && r.Score < criticalThreshold:
			summary.CriticalPages = append(summary.CriticalPages, CriticalPage{
				URL:    r.URL,
				Score:  r.Score,
				Reason: fmt.Sprintf("score %d below threshold %d", r.Score, criticalThreshold),
			})
		case r.CriticalIssues > 0:
			summary.CriticalPages = append(summary.CriticalPages, CriticalPage{
				URL:    r.URL,
				Score:  r.Score,
				Reason: fmt.Sprintf("%d critical issues", r.CriticalIssues),
			})
		}
	}

	if summary.ScoredPages > 0 {
		summary.AverageScore = float64(scoreTotal) / float64(summary.ScoredPages)
	}

	return summary
}
