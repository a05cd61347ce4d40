package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeedParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://acme.com/", r.URL.Query().Get("url"))
		assert.Equal(t, "mobile", r.URL.Query().Get("strategy"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"lighthouseResult": {
				"categories": {"performance": {"score": 0.87}},
				"audits": {
					"first-contentful-paint": {"numericValue": 1200.5},
					"largest-contentful-paint": {"numericValue": 2400.0},
					"total-blocking-time": {"numericValue": 150.0}
				}
			}
		}`)
	}))
	defer server.Close()

	a := NewSpeed(server.URL, "test-key", 2*time.Second)
	out, err := a.Analyze(context.Background(), &Target{URL: "https://acme.com/"})
	require.NoError(t, err)

	result := out.(SpeedResult)
	assert.Equal(t, 87, result.Score)
	assert.Equal(t, 87, result.AuditScore())
	assert.InDelta(t, 1200.5, result.FirstContentfulPaintMs, 0.001)
	assert.InDelta(t, 2400.0, result.LargestContentfulMs, 0.001)
	assert.InDelta(t, 150.0, result.TotalBlockingMs, 0.001)
}

func TestSpeedErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	a := NewSpeed(server.URL, "", 2*time.Second)
	_, err := a.Analyze(context.Background(), &Target{URL: "https://acme.com/"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSpeedMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json at all")
	}))
	defer server.Close()

	a := NewSpeed(server.URL, "", 2*time.Second)
	_, err := a.Analyze(context.Background(), &Target{URL: "https://acme.com/"})
	require.Error(t, err)
}

func TestSpeedUnreachableEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	a := NewSpeed(endpoint, "", time.Second)
	_, err := a.Analyze(context.Background(), &Target{URL: "https://acme.com/"})
	require.Error(t, err)
}
