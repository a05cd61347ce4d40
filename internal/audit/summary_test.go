package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeCounts(t *testing.T) {
	results := []PageAuditResult{
		{URL: "https://x.com/a", Level: LevelFull, Success: true, Score: 90, HasScore: true},
		{URL: "https://x.com/b", Level: LevelStandard, Success: true, Score: 70, HasScore: true},
		{URL: "https://x.com/c", Level: LevelLight, Success: true, Score: 50, HasScore: true},
		{URL: "https://x.com/d", Level: LevelFailed, Success: false, Error: "TimeoutError"},
	}

	summary := Summarize(results, 66.7, 30)

	assert.Equal(t, 4, summary.TotalPages)
	assert.Equal(t, 3, summary.SuccessfulAnalyses)
	assert.Equal(t, 1, summary.FailedAnalyses)
	assert.Equal(t, 1, summary.LevelCounts[LevelFull])
	assert.Equal(t, 1, summary.LevelCounts[LevelStandard])
	assert.Equal(t, 1, summary.LevelCounts[LevelLight])
	assert.Equal(t, 1, summary.LevelCounts[LevelFailed])
	assert.InDelta(t, 70.0, summary.AverageScore, 0.001)
	assert.Equal(t, 66.7, summary.CoveragePercent)

	assert.Len(t, summary.FailedPages, 1)
	assert.Equal(t, "https://x.com/d", summary.FailedPages[0].URL)
	assert.Equal(t, "TimeoutError", summary.FailedPages[0].Error)
}

func TestSummarizeCriticalPages(t *testing.T) {
	results := []PageAuditResult{
		{URL: "https://x.com/low", Level: LevelLight, Success: true, Score: 20, HasScore: true},
		{URL: "https://x.com/issues", Level: LevelFull, Success: true, Score: 80, HasScore: true, CriticalIssues: 2},
		{URL: "https://x.com/fine", Level: LevelLight, Success: true, Score: 85, HasScore: true},
	}

	summary := Summarize(results, 50, 30)

	assert.Len(t, summary.CriticalPages, 2)
	assert.Equal(t, "https://x.com/low", summary.CriticalPages[0].URL)
	assert.Equal(t, "https://x.com/issues", summary.CriticalPages[1].URL)
}

func TestSummarizeAverageSkipsUnscoredPages(t *testing.T) {
	results := []PageAuditResult{
		{URL: "https://x.com/a", Level: LevelLight, Success: true, Score: 60, HasScore: true},
		{URL: "https://x.com/b", Level: LevelLight, Success: true, HasScore: false},
	}

	summary := Summarize(results, 0, 30)

	assert.Equal(t, 1, summary.ScoredPages)
	assert.InDelta(t, 60.0, summary.AverageScore, 0.001)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil, 0, 30)

	assert.Equal(t, 0, summary.TotalPages)
	assert.Zero(t, summary.AverageScore)
	assert.Empty(t, summary.CriticalPages)
	assert.Empty(t, summary.FailedPages)
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"full", "standard", "light", "gradual"} {
		mode, err := ParseMode(valid)
		assert.NoError(t, err)
		assert.Equal(t, Mode(valid), mode)
	}

	_, err := ParseMode("turbo")
	assert.Error(t, err)
}
