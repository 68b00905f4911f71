package pypi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/pydist"
)

const (
	// DefaultPerPage is the search page size when none is requested.
	DefaultPerPage = 20
	// MaxPerPage caps the search page size.
	MaxPerPage = 100

	simpleIndexKey = "simple-index"
)

// Query describes a package search.
type Query struct {
	Query      string
	Page       int    // 1-based, defaults to 1
	PerPage    int    // defaults to DefaultPerPage, capped at MaxPerPage
	SortBy     string // "name" (default) or "relevance"
	ExactMatch bool   // match the normalized name exactly
}

// Summary is one search hit, hydrated from the JSON API where possible.
// Version and Summary stay empty when the per-package lookup fails;
// a failed lookup never fails the whole search.
type Summary struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Packages []Summary `json:"packages"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// Search finds packages whose normalized name matches the query and
// hydrates the requested page with version and summary metadata.
func (c *Client) Search(ctx context.Context, q Query) (*SearchResult, error) {
	term := pydist.Normalize(strings.TrimSpace(q.Query))
	if term == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "search query is required")
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	switch q.SortBy {
	case "", "name", "relevance":
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "sort_by must be 'name' or 'relevance'")
	}

	names, err := c.projectNames(ctx)
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, name := range names {
		norm := pydist.Normalize(name)
		if q.ExactMatch {
			if norm == term {
				matched = append(matched, name)
			}
		} else if strings.Contains(norm, term) {
			matched = append(matched, name)
		}
	}
	sortMatches(matched, term, q.SortBy)

	total := len(matched)
	pages := (total + q.PerPage - 1) / q.PerPage
	result := &SearchResult{
		Packages: []Summary{},
		Total:    total,
		Page:     q.Page,
		Pages:    pages,
	}

	start := (q.Page - 1) * q.PerPage
	if start >= total {
		return result, nil
	}
	end := start + q.PerPage
	if end > total {
		end = total
	}

	for _, name := range matched[start:end] {
		result.Packages = append(result.Packages, c.hydrate(ctx, name))
	}
	return result, nil
}

func (c *Client) hydrate(ctx context.Context, name string) Summary {
	pkg, err := c.FetchPackage(ctx, name, false)
	if err != nil {
		return Summary{Name: name}
	}
	return Summary{
		Name:    pkg.Info.Name,
		Version: pkg.Info.Version,
		Summary: pkg.Info.Summary,
	}
}

// sortMatches orders hits in place. Name order is plain lexicographic;
// relevance puts exact matches first, then prefix matches, then the rest,
// shorter names before longer within each band.
func sortMatches(names []string, term, sortBy string) {
	if sortBy != "relevance" {
		sort.Strings(names)
		return
	}
	rank := func(name string) int {
		norm := pydist.Normalize(name)
		switch {
		case norm == term:
			return 0
		case strings.HasPrefix(norm, term):
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
}

// projectNames returns every project name in the index, via the Simple v1
// JSON API. The list is cached under a single key; at roughly half a
// million entries the fetch is expensive and worth a long TTL.
func (c *Client) projectNames(ctx context.Context) ([]string, error) {
	var index simpleIndex
	err := c.Cached(ctx, simpleIndexKey, false, &index, func() error {
		headers := map[string]string{"Accept": "application/vnd.pypi.simple.v1+json"}
		return c.GetWithHeaders(ctx, fmt.Sprintf("%s/simple/", c.baseURL), headers, &index)
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(index.Projects))
	for _, p := range index.Projects {
		names = append(names, p.Name)
	}
	return names, nil
}

type simpleIndex struct {
	Projects []simpleProject `json:"projects"`
}

type simpleProject struct {
	Name string `json:"name"`
}
