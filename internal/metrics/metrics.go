package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mauroociappinaph/webaudit/internal/storage"
)

// Tracker holds and manages audit run metrics
type Tracker struct {
	mu                  sync.Mutex
	data                storage.Metrics
	totalAnalysisTimeMs int64
	analyzedCount       int
}

// NewTracker creates a new metrics tracker
func NewTracker() *Tracker {
	return &Tracker{
		data: storage.Metrics{
			StartTime: time.Now(),
		},
	}
}

// SetPagesDiscovered records how many pages discovery produced
func (t *Tracker) SetPagesDiscovered(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.PagesDiscovered = count
}

// RecordPage records the outcome of one analyzed page
func (t *Tracker) RecordPage(level string, success bool, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !success {
		t.data.PagesFailed++
		return
	}

	t.data.PagesAnalyzed++
	t.totalAnalysisTimeMs += elapsed.Milliseconds()
	t.analyzedCount++

	switch level {
	case "full":
		t.data.FullAnalyses++
	case "standard":
		t.data.StandardAnalyses++
	case "light":
		t.data.LightAnalyses++
	}
}

// GetSnapshot returns a copy of current metrics
func (t *Tracker) GetSnapshot() storage.Metrics {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := t.data
	snapshot.TotalAnalysisTimeMs = t.totalAnalysisTimeMs

	if t.analyzedCount > 0 {
		snapshot.AvgAnalysisTimeMs = t.totalAnalysisTimeMs / int64(t.analyzedCount)
	}

	return snapshot
}

// WriteToFile exports metrics to a JSON file
func (t *Tracker) WriteToFile(path, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Finalize metrics
	t.data.EndTime = time.Now()
	t.data.TerminationReason = reason
	t.data.TotalAnalysisTimeMs = t.totalAnalysisTimeMs

	if t.analyzedCount > 0 {
		t.data.AvgAnalysisTimeMs = t.totalAnalysisTimeMs / int64(t.analyzedCount)
	}

	jsonData, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	return nil
}

// LogProgress prints current metrics to console (for periodic updates)
func (t *Tracker) LogProgress() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fmt.Sprintf("Pages: %d discovered, %d analyzed, %d failed | Levels: %d full, %d standard, %d light",
		t.data.PagesDiscovered,
		t.data.PagesAnalyzed,
		t.data.PagesFailed,
		t.data.FullAnalyses,
		t.data.StandardAnalyses,
		t.data.LightAnalyses,
	)
}
