package discovery

import "sync"

// Source identifies which discovery method produced a candidate
type Source string

const (
	SourceSitemap  Source = "sitemap"
	SourceHomepage Source = "homepage-link"
	SourceCatalog  Source = "default-catalog"
)

// Candidate is a discovered URL, immutable after creation
type Candidate struct {
	URL    string
	Source Source
}

// CandidatePool holds deduplicated candidates in insertion order.
// Deduplication is by exact string match after normalization;
// differently-formed but equivalent URLs stay distinct.
type CandidatePool struct {
	mu       sync.RWMutex
	seen     map[string]bool
	ordered  []Candidate
	bySource map[Source]int
}

// NewCandidatePool creates an empty pool
func NewCandidatePool() *CandidatePool {
	return &CandidatePool{
		seen:     make(map[string]bool),
		bySource: make(map[Source]int),
	}
}

// Add registers a candidate URL for the given source.
// Returns true if added, false if it was already present.
func (p *CandidatePool) Add(rawURL string, source Source) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seen[rawURL] {
		return false
	}

	p.seen[rawURL] = true
	p.ordered = append(p.ordered, Candidate{URL: rawURL, Source: source})
	p.bySource[source]++
	return true
}

// Len returns the number of distinct candidates
func (p *CandidatePool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.ordered)
}

// CountBySource returns how many candidates the given source contributed
func (p *CandidatePool) CountBySource(source Source) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bySource[source]
}

// Snapshot returns a copy of all candidates in insertion order. The
// pool is effectively sealed once the snapshot feeds the ranker; the
// scheduler never mutates it.
func (p *CandidatePool) Snapshot() []Candidate {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Candidate, len(p.ordered))
	copy(out, p.ordered)
	return out
}
