package analyzer

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Technology is one fingerprinted technology
type Technology struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	DetectedBy string `json:"detected_by"`
}

// TechResult lists the technologies fingerprinted on a page
type TechResult struct {
	Technologies []Technology `json:"technologies"`
	HasLoginForm bool         `json:"has_login_form"`
}

// scriptHints maps substrings of script URLs to technologies
var scriptHints = []struct {
	substr   string
	name     string
	category string
}{
	{"jquery", "jQuery", "javascript-library"},
	{"react", "React", "javascript-framework"},
	{"vue", "Vue.js", "javascript-framework"},
	{"angular", "Angular", "javascript-framework"},
	{"bootstrap", "Bootstrap", "ui-framework"},
	{"wp-content", "WordPress", "cms"},
	{"wp-includes", "WordPress", "cms"},
	{"shopify", "Shopify", "ecommerce"},
	{"gtag", "Google Analytics", "analytics"},
	{"googletagmanager", "Google Tag Manager", "analytics"},
}

// headerHints maps response header values to technologies
var headerHints = []struct {
	header   string
	substr   string
	name     string
	category string
}{
	{"Server", "nginx", "Nginx", "web-server"},
	{"Server", "apache", "Apache", "web-server"},
	{"Server", "cloudflare", "Cloudflare", "cdn"},
	{"X-Powered-By", "php", "PHP", "language"},
	{"X-Powered-By", "express", "Express", "web-framework"},
	{"X-Powered-By", "next.js", "Next.js", "web-framework"},
}

// Tech fingerprints the technologies behind a page from markup and
// response headers. No score; the findings are informational.
type Tech struct{}

// NewTech creates the technology fingerprinter
func NewTech() *Tech { return &Tech{} }

// Name implements Analyzer
func (a *Tech) Name() string { return "technology" }

// Analyze implements Analyzer
func (a *Tech) Analyze(_ context.Context, target *Target) (any, error) {
	result := TechResult{}
	seen := make(map[string]bool)

	add := func(t Technology) {
		if !seen[t.Name] {
			seen[t.Name] = true
			result.Technologies = append(result.Technologies, t)
		}
	}

	if gen, ok := target.Doc.Find(`meta[name="generator"]`).Attr("content"); ok {
		gen = strings.TrimSpace(gen)
		if gen != "" {
			add(Technology{Name: gen, Category: "cms", DetectedBy: "meta-generator"})
		}
	}

	target.Doc.Find("script[src]").Each(func(_ int, s *goquery.Selection) {
		src := strings.ToLower(s.AttrOr("src", ""))
		for _, hint := range scriptHints {
			if strings.Contains(src, hint.substr) {
				add(Technology{Name: hint.name, Category: hint.category, DetectedBy: "script-src"})
			}
		}
	})

	for _, hint := range headerHints {
		value := strings.ToLower(target.Headers.Get(hint.header))
		if value != "" && strings.Contains(value, hint.substr) {
			add(Technology{Name: hint.name, Category: hint.category, DetectedBy: "headers"})
		}
	}

	result.HasLoginForm = target.Doc.Find(`form input[type="password"]`).Length() > 0

	return result, nil
}
