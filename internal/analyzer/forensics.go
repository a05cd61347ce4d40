package analyzer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"
)

// ForensicsResult breaks down where a page's load time goes
type ForensicsResult struct {
	DNSMs      int64  `json:"dns_ms"`
	ConnectMs  int64  `json:"connect_ms"`
	TLSMs      int64  `json:"tls_ms"`
	TTFBMs     int64  `json:"ttfb_ms"`
	TotalMs    int64  `json:"total_ms"`
	BodyBytes  int64  `json:"body_bytes"`
	Bottleneck string `json:"bottleneck"`
}

// Forensics re-fetches the page with client tracing enabled to break
// the response time into phases and name the dominant bottleneck.
// Reserved for the full analysis tier because of the extra request.
type Forensics struct {
	client *http.Client
}

// NewForensics creates the bottleneck analyzer
func NewForensics(timeout time.Duration) *Forensics {
	return &Forensics{client: &http.Client{Timeout: timeout}}
}

// Name implements Analyzer
func (a *Forensics) Name() string { return "forensics" }

// Analyze implements Analyzer
func (a *Forensics) Analyze(ctx context.Context, target *Target) (any, error) {
	var dnsStart, dnsDone, connStart, connDone, tlsStart, tlsDone, firstByte time.Time

	trace := &httptrace.ClientTrace{
		DNSStart:             func(httptrace.DNSStartInfo) { dnsStart = time.Now() },
		DNSDone:              func(httptrace.DNSDoneInfo) { dnsDone = time.Now() },
		ConnectStart:         func(string, string) { connStart = time.Now() },
		ConnectDone:          func(string, string, error) { connDone = time.Now() },
		TLSHandshakeStart:    func() { tlsStart = time.Now() },
		TLSHandshakeDone:     func(_ tls.ConnectionState, _ error) { tlsDone = time.Now() },
		GotFirstResponseByte: func() { firstByte = time.Now() },
	}

	req, err := http.NewRequestWithContext(httptrace.WithClientTrace(ctx, trace), http.MethodGet, target.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build forensics request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forensics fetch of %s: %w", target.URL, err)
	}
	defer resp.Body.Close()

	written, err := io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("forensics read of %s: %w", target.URL, err)
	}
	total := time.Since(start)

	result := ForensicsResult{
		TotalMs:   total.Milliseconds(),
		BodyBytes: written,
	}
	if !dnsStart.IsZero() && !dnsDone.IsZero() {
		result.DNSMs = dnsDone.Sub(dnsStart).Milliseconds()
	}
	if !connStart.IsZero() && !connDone.IsZero() {
		result.ConnectMs = connDone.Sub(connStart).Milliseconds()
	}
	if !tlsStart.IsZero() && !tlsDone.IsZero() {
		result.TLSMs = tlsDone.Sub(tlsStart).Milliseconds()
	}
	if !firstByte.IsZero() {
		result.TTFBMs = firstByte.Sub(start).Milliseconds()
	}

	result.Bottleneck = classifyBottleneck(result)
	return result, nil
}

// classifyBottleneck names the dominant cost of the page load
func classifyBottleneck(r ForensicsResult) string {
	switch {
	case r.TotalMs < 1000:
		return "none"
	case r.DNSMs > r.TotalMs/3:
		return "dns"
	case r.ConnectMs+r.TLSMs > r.TotalMs/3:
		return "connection"
	case r.TTFBMs > r.TotalMs/2:
		return "server"
	case r.BodyBytes > 2<<20:
		return "payload"
	default:
		return "transfer"
	}
}
