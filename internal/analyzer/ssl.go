package analyzer

import (
	"context"
	"crypto/tls"
	"net"
	"net/url"
	"time"
)

// SSLResult reports certificate health for a page's host
type SSLResult struct {
	HasTLS       bool   `json:"has_tls"`
	Valid        bool   `json:"valid"`
	Issuer       string `json:"issuer,omitempty"`
	DaysToExpiry int    `json:"days_to_expiry"`
	Score        int    `json:"score"`
}

// AuditScore implements Scored
func (r SSLResult) AuditScore() int { return r.Score }

// CriticalIssueCount implements CriticalCounter; a missing or expired
// certificate is critical.
func (r SSLResult) CriticalIssueCount() int {
	if !r.HasTLS || !r.Valid {
		return 1
	}
	return 0
}

// SSL inspects the TLS certificate presented by the page's host
type SSL struct {
	timeout time.Duration
}

// NewSSL creates the certificate analyzer
func NewSSL(timeout time.Duration) *SSL {
	return &SSL{timeout: timeout}
}

// Name implements Analyzer
func (a *SSL) Name() string { return "ssl" }

// Analyze implements Analyzer. Plain-http pages are reported, not
// errored: the absent certificate is the finding.
func (a *SSL) Analyze(ctx context.Context, target *Target) (any, error) {
	parsed, err := url.Parse(target.URL)
	if err != nil {
		return nil, err
	}
	if parsed.Scheme != "https" {
		return SSLResult{HasTLS: false, Score: 0}, nil
	}

	host := parsed.Hostname()
	port := parsed.Port()
	if port == "" {
		port = "443"
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: a.timeout},
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		// Handshake failure on an https URL means the certificate is
		// unusable, which is a result, not an analyzer crash.
		return SSLResult{HasTLS: true, Valid: false, Score: 0}, nil
	}
	defer conn.Close()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return SSLResult{HasTLS: true, Valid: false, Score: 0}, nil
	}

	cert := state.PeerCertificates[0]
	days := int(time.Until(cert.NotAfter).Hours() / 24)

	result := SSLResult{
		HasTLS:       true,
		Valid:        days > 0,
		Issuer:       cert.Issuer.CommonName,
		DaysToExpiry: days,
	}

	switch {
	case days <= 0:
		result.Score = 0
	case days < 15:
		result.Score = 50
	case days < 30:
		result.Score = 80
	default:
		result.Score = 100
	}

	return result, nil
}
