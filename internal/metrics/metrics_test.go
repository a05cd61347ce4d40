package metrics

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauroociappinaph/webaudit/internal/storage"
)

func TestRecordPageCountsLevels(t *testing.T) {
	tracker := NewTracker()
	tracker.SetPagesDiscovered(12)

	tracker.RecordPage("full", true, 200*time.Millisecond)
	tracker.RecordPage("full", true, 400*time.Millisecond)
	tracker.RecordPage("standard", true, 100*time.Millisecond)
	tracker.RecordPage("light", true, 50*time.Millisecond)
	tracker.RecordPage("standard", false, 0)

	snapshot := tracker.GetSnapshot()
	assert.Equal(t, 12, snapshot.PagesDiscovered)
	assert.Equal(t, 4, snapshot.PagesAnalyzed)
	assert.Equal(t, 1, snapshot.PagesFailed)
	assert.Equal(t, 2, snapshot.FullAnalyses)
	assert.Equal(t, 1, snapshot.StandardAnalyses)
	assert.Equal(t, 1, snapshot.LightAnalyses)
	assert.Equal(t, int64(750), snapshot.TotalAnalysisTimeMs)
	assert.Equal(t, int64(187), snapshot.AvgAnalysisTimeMs)
}

func TestFailedPagesDoNotSkewAverage(t *testing.T) {
	tracker := NewTracker()
	tracker.RecordPage("light", true, 300*time.Millisecond)
	tracker.RecordPage("light", false, 0)
	tracker.RecordPage("full", false, 0)

	snapshot := tracker.GetSnapshot()
	assert.Equal(t, 1, snapshot.PagesAnalyzed)
	assert.Equal(t, 2, snapshot.PagesFailed)
	assert.Equal(t, int64(300), snapshot.AvgAnalysisTimeMs)
}

func TestWriteToFile(t *testing.T) {
	tracker := NewTracker()
	tracker.SetPagesDiscovered(3)
	tracker.RecordPage("full", true, 100*time.Millisecond)

	path := filepath.Join(t.TempDir(), "metrics.json")
	require.NoError(t, tracker.WriteToFile(path, "completed"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var written storage.Metrics
	require.NoError(t, json.Unmarshal(raw, &written))
	assert.Equal(t, "completed", written.TerminationReason)
	assert.Equal(t, 3, written.PagesDiscovered)
	assert.Equal(t, 1, written.FullAnalyses)
	assert.False(t, written.EndTime.IsZero())
}

func TestLogProgress(t *testing.T) {
	tracker := NewTracker()
	tracker.SetPagesDiscovered(5)
	tracker.RecordPage("standard", true, 10*time.Millisecond)

	assert.Contains(t, tracker.LogProgress(), "5 discovered")
	assert.Contains(t, tracker.LogProgress(), "1 analyzed")
}
