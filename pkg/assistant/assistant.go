// Package assistant answers natural-language questions about Python
// libraries. Queries are scored against a category keyword table; the
// top categories select curated recommendations, ranked by fuzzy
// relevance to the query. Queries matching no category fall back to a
// package-index search.
package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/integrations/pypi"
)

const (
	maxLibraries      = 15
	maxSearchFallback = 10
	// supplementBelow triggers an index search when curated categories
	// yield too few recommendations.
	supplementBelow = 5
)

// Searcher is the slice of the PyPI client the assistant needs.
type Searcher interface {
	Search(ctx context.Context, q pypi.Query) (*pypi.SearchResult, error)
}

// Response is the answer to one query.
type Response struct {
	Query     string    `json:"query"`
	Message   string    `json:"message"`
	Libraries []Library `json:"libraries"`
}

// Assistant matches queries to library recommendations.
type Assistant struct {
	index Searcher
}

// New creates an Assistant backed by index for uncategorized queries.
// A nil index disables the search fallback.
func New(index Searcher) *Assistant {
	return &Assistant{index: index}
}

// Answer processes a natural-language query. Index search failures
// degrade to fewer results rather than failing the whole answer.
func (a *Assistant) Answer(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "query is required")
	}

	resp := &Response{Query: query, Libraries: []Library{}}

	categories := categorize(query)
	if len(categories) == 0 {
		resp.Libraries = a.searchIndex(ctx, query, maxSearchFallback)
		resp.Message = fmt.Sprintf("Here are some Python libraries related to '%s':", query)
		return resp, nil
	}

	if len(categories) > 2 {
		categories = categories[:2]
	}
	var libraries []Library
	names := make([]string, 0, 2)
	for _, cat := range categories {
		names = append(names, strings.ReplaceAll(cat, "_", " "))
		libraries = append(libraries, rank(query, curated[cat])...)
	}

	if len(libraries) < supplementBelow {
		seen := make(map[string]bool, len(libraries))
		for _, lib := range libraries {
			seen[lib.Name] = true
		}
		for _, lib := range a.searchIndex(ctx, query, maxSearchFallback) {
			if !seen[lib.Name] {
				seen[lib.Name] = true
				libraries = append(libraries, lib)
			}
		}
	}

	if len(libraries) > maxLibraries {
		libraries = libraries[:maxLibraries]
	}
	resp.Libraries = libraries
	resp.Message = fmt.Sprintf("Here are Python libraries for %s based on your query:", strings.Join(names, " and "))
	return resp, nil
}

// categorize returns the categories whose keywords appear in the query,
// best score first. Ties keep the fixed category order.
func categorize(query string) []string {
	query = strings.ToLower(query)
	scores := make(map[string]int)
	for cat, keywords := range categoryKeywords {
		for _, kw := range keywords {
			if strings.Contains(query, kw) {
				scores[cat]++
			}
		}
	}

	var matched []string
	for _, cat := range categoryOrder {
		if scores[cat] > 0 {
			matched = append(matched, cat)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return scores[matched[i]] > scores[matched[j]]
	})
	return matched
}

// rank orders a curated list by fuzzy relevance of name and summary to
// the query. Libraries the matcher rejects keep their table order after
// the matched ones.
func rank(query string, libs []Library) []Library {
	matches := fuzzy.FindFrom(query, librarySource(libs))
	if len(matches) == 0 {
		return libs
	}

	ordered := make([]Library, 0, len(libs))
	taken := make(map[int]bool, len(matches))
	for _, m := range matches {
		ordered = append(ordered, libs[m.Index])
		taken[m.Index] = true
	}
	for i, lib := range libs {
		if !taken[i] {
			ordered = append(ordered, lib)
		}
	}
	return ordered
}

func (a *Assistant) searchIndex(ctx context.Context, query string, limit int) []Library {
	if a.index == nil {
		return []Library{}
	}
	result, err := a.index.Search(ctx, pypi.Query{Query: query, PerPage: limit, SortBy: "relevance"})
	if err != nil {
		return []Library{}
	}
	libs := make([]Library, 0, len(result.Packages))
	for _, p := range result.Packages {
		libs = append(libs, Library{Name: p.Name, Version: p.Version, Summary: p.Summary})
	}
	return libs
}

type librarySource []Library

func (s librarySource) String(i int) string { return s[i].Name + " " + s[i].Summary }
func (s librarySource) Len() int            { return len(s) }
