package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mauroociappinaph/webaudit/internal/analyzer"
	"github.com/mauroociappinaph/webaudit/internal/audit"
	"github.com/mauroociappinaph/webaudit/internal/config"
	"github.com/mauroociappinaph/webaudit/internal/discovery"
	"github.com/mauroociappinaph/webaudit/internal/metrics"
	"github.com/mauroociappinaph/webaudit/internal/ranking"
	"github.com/mauroociappinaph/webaudit/internal/storage"
	"github.com/mauroociappinaph/webaudit/internal/version"
	"github.com/sirupsen/logrus"
)

func main() {
	// Configure logging
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logrus.Infof("Web Audit v%s starting...", version.Version)

	// Load configuration
	configPath := "config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	logrus.Infof("Configuration loaded: base_url=%s, max_pages=%d, mode=%s",
		cfg.BaseURL, cfg.MaxPages, cfg.AuditMode)

	mode, err := audit.ParseMode(cfg.AuditMode)
	if err != nil {
		logrus.Fatalf("Invalid audit mode: %v", err)
	}

	// Initialize storage
	store, err := storage.NewStorage(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	logrus.Infof("Database initialized: %s", cfg.DBPath)

	// Initialize metrics tracker
	tracker := metrics.NewTracker()

	// Wire the orchestrator
	requestTimeout := time.Duration(cfg.RequestTimeoutMs) * time.Millisecond

	ranker := ranking.NewRanker(ranking.DefaultWeights())
	discoverer := discovery.NewDiscoverer(cfg, ranker)
	fetcher := analyzer.NewFetcher(requestTimeout)

	// Each depth level implies a growing analyzer set
	light := []analyzer.Analyzer{
		analyzer.NewUptime(),
		analyzer.NewSSL(requestTimeout),
		analyzer.NewLinks(requestTimeout, cfg.LinkCheckLimit),
		analyzer.NewSEO(),
		analyzer.NewTech(),
	}
	standard := append(append([]analyzer.Analyzer{}, light...),
		analyzer.NewSpeed(cfg.PageSpeedEndpoint, cfg.PageSpeedAPIKey, requestTimeout))
	full := append(append([]analyzer.Analyzer{}, standard...),
		analyzer.NewForensics(requestTimeout))

	scheduler := audit.NewScheduler(
		discoverer,
		fetcher,
		audit.Tiers{Light: light, Standard: standard, Full: full},
		audit.NewFixedDelayPacer(time.Duration(cfg.PageDelayMs)*time.Millisecond),
		cfg.CriticalScoreThreshold,
		func(level audit.Level, success bool, elapsed time.Duration) {
			tracker.RecordPage(string(level), success, elapsed)
		},
	)

	// Cancel the run on SIGINT/SIGTERM; the scheduler stops at the next
	// page boundary and the partial results are still reported
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Progress logger
	stopProgress := make(chan struct{})
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				logrus.Info(tracker.LogProgress())
			case <-stopProgress:
				return
			}
		}
	}()

	report, err := scheduler.Run(ctx, cfg.BaseURL, audit.Options{
		MaxPages: cfg.MaxPages,
		Mode:     mode,
	})
	close(stopProgress)
	if err != nil {
		logrus.Fatalf("Audit failed: %v", err)
	}

	tracker.SetPagesDiscovered(report.Discovery.TotalDiscovered)

	terminationReason := "completed"
	if ctx.Err() != nil {
		terminationReason = "signal"
	}

	// Persist the run
	auditID, err := store.SaveRun(storage.AuditRun{
		BaseURL:         report.BaseURL,
		Mode:            string(report.Mode),
		TotalPages:      report.Summary.TotalPages,
		FailedPages:     report.Summary.FailedAnalyses,
		AverageScore:    report.Summary.AverageScore,
		CoveragePercent: report.Summary.CoveragePercent,
	}, pageRows(report))
	if err != nil {
		logrus.Errorf("Failed to persist audit: %v", err)
	} else {
		logrus.Infof("Audit persisted with id=%d", auditID)
	}

	// Final metrics
	logrus.Info("Final stats: " + tracker.LogProgress())
	if err := tracker.WriteToFile(cfg.MetricsPath, terminationReason); err != nil {
		logrus.Errorf("Failed to write metrics: %v", err)
	} else {
		logrus.Infof("Metrics written to %s", cfg.MetricsPath)
	}

	// Business-facing summary
	logrus.Infof("Site audit of %s: %d pages, avg score %.1f, coverage %.1f%%",
		report.BaseURL, report.Summary.TotalPages, report.Summary.AverageScore,
		report.Summary.CoveragePercent)
	for _, critical := range report.Summary.CriticalPages {
		logrus.Warnf("Critical page %s: %s", critical.URL, critical.Reason)
	}
	for _, failed := range report.Summary.FailedPages {
		logrus.Warnf("Failed page %s: %s", failed.URL, failed.Error)
	}

	logrus.Info("Audit run complete. Goodbye!")
}

// pageRows converts report results to storage rows
func pageRows(report *audit.Report) []storage.PageRow {
	rows := make([]storage.PageRow, len(report.PageResults))
	for i, result := range report.PageResults {
		rows[i] = storage.PageRow{
			URL:            result.URL,
			Level:          string(result.Level),
			Success:        result.Success,
			Score:          result.Score,
			AnalysisTimeMs: result.AnalysisTimeMs,
			Error:          result.Error,
		}
	}
	return rows
}
