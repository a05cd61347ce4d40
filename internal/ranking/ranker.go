package ranking

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// PageType labels a page by the content its path suggests
type PageType string

const (
	TypeProduct PageType = "product"
	TypeBlog    PageType = "blog"
	TypeContact PageType = "contact"
	TypeAbout   PageType = "about"
	TypeService PageType = "service"
	TypeGeneral PageType = "general"
)

// RankedPage is a candidate URL with its computed importance
type RankedPage struct {
	URL      string
	Priority int
	Type     PageType
	Depth    int
}

// Weights is the immutable scoring table used by a Ranker.
// Passing it at construction keeps scoring deterministic and testable
// with alternate tables.
type Weights struct {
	CriticalKeywords []string
	CriticalBonus    int
	NavKeywords      []string
	NavBonus         int
	MaxDepthBonus    int
	QueryPenalty     int
	FilePenalty      int
}

// DefaultWeights returns the standard scoring table. Keyword lists are
// bilingual to cover Spanish and English site conventions.
func DefaultWeights() Weights {
	return Weights{
		CriticalKeywords: []string{
			"product", "producto", "shop", "tienda", "store",
			"contact", "contacto", "service", "servicio",
			"about", "nosotros", "blog", "faq", "pricing", "precio",
		},
		CriticalBonus: 8,
		NavKeywords: []string{
			"home", "inicio", "company", "empresa", "portfolio",
			"team", "equipo", "careers", "empleo", "news", "noticias",
		},
		NavBonus:      6,
		MaxDepthBonus: 5,
		QueryPenalty:  2,
		FilePenalty:   5,
	}
}

// fileLikeRe re-checks for file-style URLs even though the normalizer
// already filters them, because Rank may also receive externally
// supplied lists.
var fileLikeRe = regexp.MustCompile(`(?i)\.(jpe?g|png|gif|svg|webp|ico|pdf|docx?|xlsx?|pptx?|zip|rar|tar|gz|mp3|mp4|avi|mov|webm|css|js)$`)

// type classification is independent of priority scoring: a page can
// rank high and still classify as general.
var typeKeywords = []struct {
	pageType PageType
	keywords []string
}{
	{TypeProduct, []string{"product", "producto", "shop", "tienda", "store"}},
	{TypeBlog, []string{"blog", "news", "noticias", "article", "articulo"}},
	{TypeContact, []string{"contact", "contacto"}},
	{TypeAbout, []string{"about", "nosotros", "quienes"}},
	{TypeService, []string{"service", "servicio"}},
}

// Ranker orders candidate URLs by estimated importance
type Ranker struct {
	weights Weights
}

// NewRanker creates a ranker with the given scoring table
func NewRanker(w Weights) *Ranker {
	return &Ranker{weights: w}
}

// Rank scores every candidate URL and returns them ordered by
// descending priority; ties break toward shallower paths. The output
// ordering is deterministic for a fixed input set.
func (r *Ranker) Rank(candidates []string) []RankedPage {
	pages := make([]RankedPage, 0, len(candidates))

	for _, raw := range candidates {
		parsed, err := url.Parse(raw)
		if err != nil {
			continue
		}

		depth := pathDepth(parsed.Path)
		pages = append(pages, RankedPage{
			URL:      raw,
			Priority: r.score(parsed, depth),
			Type:     classify(parsed.Path),
			Depth:    depth,
		})
	}

	sort.Slice(pages, func(i, j int) bool {
		if pages[i].Priority != pages[j].Priority {
			return pages[i].Priority > pages[j].Priority
		}
		if pages[i].Depth != pages[j].Depth {
			return pages[i].Depth < pages[j].Depth
		}
		return pages[i].URL < pages[j].URL
	})

	return pages
}

// score computes the additive priority for a single URL. Additive, not
// multiplicative, so each contribution stays explainable.
func (r *Ranker) score(u *url.URL, depth int) int {
	lowerPath := strings.ToLower(u.Path)
	priority := 0

	// Each distinct keyword hit adds its own bonus; keywords are not
	// mutually exclusive.
	for _, kw := range r.weights.CriticalKeywords {
		if strings.Contains(lowerPath, kw) {
			priority += r.weights.CriticalBonus
		}
	}
	for _, kw := range r.weights.NavKeywords {
		if strings.Contains(lowerPath, kw) {
			priority += r.weights.NavBonus
		}
	}

	// Shallow URLs are usually the important ones
	if bonus := r.weights.MaxDepthBonus - depth; bonus > 0 {
		priority += bonus
	}

	// Query strings and fragments usually encode session state rather
	// than distinct content
	if u.RawQuery != "" || u.Fragment != "" {
		priority -= r.weights.QueryPenalty
	}

	if fileLikeRe.MatchString(u.Path) {
		priority -= r.weights.FilePenalty
	}

	if priority < 0 {
		priority = 0
	}
	return priority
}

// classify maps a path to a page type using the first matching label set
func classify(path string) PageType {
	lowerPath := strings.ToLower(path)
	for _, entry := range typeKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lowerPath, kw) {
				return entry.pageType
			}
		}
	}
	return TypeGeneral
}

// pathDepth counts non-empty path segments
func pathDepth(path string) int {
	depth := 0
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			depth++
		}
	}
	return depth
}
