package analyzer

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SEOResult reports on-page SEO heuristics
type SEOResult struct {
	Title          string   `json:"title"`
	TitleLength    int      `json:"title_length"`
	HasDescription bool     `json:"has_description"`
	H1Count        int      `json:"h1_count"`
	ImageCount     int      `json:"image_count"`
	ImagesWithAlt  int      `json:"images_with_alt"`
	HasCanonical   bool     `json:"has_canonical"`
	HasViewport    bool     `json:"has_viewport"`
	Issues         []string `json:"issues,omitempty"`
	CriticalIssues int      `json:"critical_issues"`
	Score          int      `json:"score"`
}

// AuditScore implements Scored
func (r SEOResult) AuditScore() int { return r.Score }

// CriticalIssueCount implements CriticalCounter
func (r SEOResult) CriticalIssueCount() int { return r.CriticalIssues }

// SEO scores a page against on-page SEO heuristics
type SEO struct{}

// NewSEO creates the SEO analyzer
func NewSEO() *SEO { return &SEO{} }

// Name implements Analyzer
func (a *SEO) Name() string { return "seo" }

// Analyze implements Analyzer. Scoring starts at 100 and deducts per
// finding; a missing title or description counts as critical.
func (a *SEO) Analyze(_ context.Context, target *Target) (any, error) {
	doc := target.Doc

	result := SEOResult{Score: 100}

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())
	result.TitleLength = len(result.Title)
	if result.Title == "" {
		result.addIssue("missing <title>", true)
		result.Score -= 25
	} else if result.TitleLength < 10 || result.TitleLength > 70 {
		result.addIssue("title length outside 10-70 characters", false)
		result.Score -= 10
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && strings.TrimSpace(desc) != "" {
		result.HasDescription = true
	} else {
		result.addIssue("missing meta description", true)
		result.Score -= 20
	}

	result.H1Count = doc.Find("h1").Length()
	if result.H1Count == 0 {
		result.addIssue("no <h1> heading", false)
		result.Score -= 15
	} else if result.H1Count > 1 {
		result.addIssue("multiple <h1> headings", false)
		result.Score -= 5
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		result.ImageCount++
		if alt, ok := s.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			result.ImagesWithAlt++
		}
	})
	if result.ImageCount > 0 && result.ImagesWithAlt*2 < result.ImageCount {
		result.addIssue("less than half of images have alt text", false)
		result.Score -= 10
	}

	if _, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		result.HasCanonical = true
	} else {
		result.addIssue("missing canonical link", false)
		result.Score -= 5
	}

	if _, ok := doc.Find(`meta[name="viewport"]`).Attr("content"); ok {
		result.HasViewport = true
	} else {
		result.addIssue("missing viewport meta", false)
		result.Score -= 10
	}

	if result.Score < 0 {
		result.Score = 0
	}
	return result, nil
}

func (r *SEOResult) addIssue(msg string, critical bool) {
	r.Issues = append(r.Issues, msg)
	if critical {
		r.CriticalIssues++
	}
}
