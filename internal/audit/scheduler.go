package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/mauroociappinaph/webaudit/internal/analyzer"
	"github.com/mauroociappinaph/webaudit/internal/discovery"
	"github.com/mauroociappinaph/webaudit/internal/ranking"
	"github.com/sirupsen/logrus"
)

// PageDiscoverer supplies the ranked candidate pages for a site
type PageDiscoverer interface {
	DiscoverPages(ctx context.Context, baseURL string) (*discovery.Result, error)
}

// TargetFetcher downloads one page for analysis
type TargetFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*analyzer.Target, error)
}

// Tiers maps each analysis level to the analyzer set it implies. The
// scheduler knows nothing about analyzer internals.
type Tiers struct {
	Light    []analyzer.Analyzer
	Standard []analyzer.Analyzer
	Full     []analyzer.Analyzer
}

// PageCallback is notified after every page, for metrics tracking
type PageCallback func(level Level, success bool, elapsed time.Duration)

// Options bound one audit run
type Options struct {
	MaxPages int
	Mode     Mode
}

// Scheduler walks the ranked page list up to the page budget, assigns
// each page an analysis depth, and runs the implied analyzers strictly
// sequentially. External speed-audit services are rate limited and
// expensive; sequential execution plus the pacer is the adopted
// backpressure strategy.
type Scheduler struct {
	discoverer        PageDiscoverer
	fetcher           TargetFetcher
	tiers             Tiers
	pacer             Pacer
	criticalThreshold int
	onPage            PageCallback
}

// NewScheduler wires a scheduler from its collaborators. onPage may be
// nil.
func NewScheduler(d PageDiscoverer, f TargetFetcher, tiers Tiers, pacer Pacer, criticalThreshold int, onPage PageCallback) *Scheduler {
	return &Scheduler{
		discoverer:        d,
		fetcher:           f,
		tiers:             tiers,
		pacer:             pacer,
		criticalThreshold: criticalThreshold,
		onPage:            onPage,
	}
}

// LevelFor is the deterministic depth assignment rule: a pure function
// of the mode, the page's position in the ranked sequence, and its
// priority.
func LevelFor(mode Mode, index, priority int) Level {
	switch mode {
	case ModeFull:
		return LevelFull
	case ModeStandard:
		return LevelStandard
	case ModeLight:
		return LevelLight
	}

	// gradual: the first ranks and any high-priority page get the full
	// treatment, the middle band standard, the tail light
	switch {
	case index < 3 || priority >= 10:
		return LevelFull
	case index < 8 || priority >= 6:
		return LevelStandard
	default:
		return LevelLight
	}
}

// Run discovers the site's pages and audits them in ranked order up to
// the page budget. A single page failing never aborts the run; the
// returned error is reserved for contract violations (invalid base
// URL) and caller cancellation.
func (s *Scheduler) Run(ctx context.Context, baseURL string, opts Options) (*Report, error) {
	if opts.MaxPages < 1 {
		return nil, fmt.Errorf("max pages must be >= 1, got %d", opts.MaxPages)
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeGradual
	}

	disc, err := s.discoverer.DiscoverPages(ctx, baseURL)
	if err != nil {
		return nil, err
	}

	pages := disc.PrioritizedPages
	if len(pages) > opts.MaxPages {
		pages = pages[:opts.MaxPages]
	}

	logrus.Infof("Auditing %d of %d discovered pages (mode=%s)", len(pages), disc.Metadata.TotalDiscovered, mode)

	results := make([]PageAuditResult, 0, len(pages))
	for i, page := range pages {
		if i > 0 {
			if err := s.pacer.Wait(ctx); err != nil {
				logrus.Warnf("Audit interrupted after %d pages: %v", len(results), err)
				break
			}
		}

		level := LevelFor(mode, i, page.Priority)
		result := s.auditPage(ctx, page, level)
		results = append(results, result)

		if s.onPage != nil {
			s.onPage(result.Level, result.Success, time.Duration(result.AnalysisTimeMs)*time.Millisecond)
		}

		if result.Success {
			logrus.Infof("Page %d/%d %s: level=%s score=%d (%dms)",
				i+1, len(pages), page.URL, result.Level, result.Score, result.AnalysisTimeMs)
		} else {
			logrus.Warnf("Page %d/%d %s failed: %s", i+1, len(pages), page.URL, result.Error)
		}
	}

	summary := Summarize(results, disc.Metadata.CoveragePercent, s.criticalThreshold)
	logrus.Infof("Audit complete: %d ok, %d failed, avg score %.1f",
		summary.SuccessfulAnalyses, summary.FailedAnalyses, summary.AverageScore)

	return &Report{
		BaseURL:     baseURL,
		Mode:        mode,
		PageResults: results,
		Summary:     summary,
		Discovery:   disc.Metadata,
	}, nil
}

// analyzersFor returns the analyzer set the given depth implies
func (s *Scheduler) analyzersFor(level Level) []analyzer.Analyzer {
	switch level {
	case LevelFull:
		return s.tiers.Full
	case LevelStandard:
		return s.tiers.Standard
	default:
		return s.tiers.Light
	}
}

// auditPage runs one page through its tier's analyzers. Every failure
// is caught here, at the page boundary: the page is marked failed with
// its error message and the run continues.
func (s *Scheduler) auditPage(ctx context.Context, page ranking.RankedPage, level Level) PageAuditResult {
	start := time.Now()
	result := PageAuditResult{
		URL:    page.URL,
		Level:  level,
		Checks: make(map[string]any),
	}

	target, err := s.fetcher.Fetch(ctx, page.URL)
	if err != nil {
		result.Level = LevelFailed
		result.Error = err.Error()
		result.AnalysisTimeMs = time.Since(start).Milliseconds()
		return result
	}

	for _, a := range s.analyzersFor(level) {
		output, err := a.Analyze(ctx, target)
		if err != nil {
			result.Level = LevelFailed
			result.Error = fmt.Sprintf("%s: %v", a.Name(), err)
			result.AnalysisTimeMs = time.Since(start).Milliseconds()
			return result
		}
		result.Checks[a.Name()] = output
	}

	result.Success = true
	result.Score, result.HasScore = aggregateScore(result.Checks)
	result.CriticalIssues = countCriticalIssues(result.Checks)
	result.AnalysisTimeMs = time.Since(start).Milliseconds()
	return result
}

// aggregateScore averages the 0-100 scores of every check that
// reports one
func aggregateScore(checks map[string]any) (int, bool) {
	total, count := 0, 0
	for _, output := range checks {
		if scored, ok := output.(analyzer.Scored); ok {
			total += scored.AuditScore()
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return total / count, true
}

// countCriticalIssues sums critical findings across checks
func countCriticalIssues(checks map[string]any) int {
	total := 0
	for _, output := range checks {
		if counter, ok := output.(analyzer.CriticalCounter); ok {
			total += counter.CriticalIssueCount()
		}
	}
	return total
}
