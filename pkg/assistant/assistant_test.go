package assistant

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/integrations/pypi"
)

type stubSearcher struct {
	result *pypi.SearchResult
	err    error
	query  string
}

func (s *stubSearcher) Search(_ context.Context, q pypi.Query) (*pypi.SearchResult, error) {
	s.query = q.Query
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "single category",
			query: "I need a library for deep learning",
			want:  []string{"ai"},
		},
		{
			name:  "strongest category first",
			query: "machine learning with neural networks and some visualization",
			want:  []string{"ai", "data_science"},
		},
		{
			name:  "tie keeps fixed order",
			query: "http and sql",
			want:  []string{"web", "database"},
		},
		{
			name:  "no match",
			query: "juggling chainsaws",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorize(tt.query); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("categorize(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestAnswer_CuratedCategories(t *testing.T) {
	a := New(nil)

	resp, err := a.Answer(context.Background(), "deep learning and data analysis")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if resp.Message != "Here are Python libraries for ai and data science based on your query:" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if len(resp.Libraries) != maxLibraries {
		t.Errorf("expected %d libraries, got %d", maxLibraries, len(resp.Libraries))
	}

	names := make(map[string]bool)
	for _, lib := range resp.Libraries {
		names[lib.Name] = true
	}
	if !names["tensorflow"] || !names["pandas"] {
		t.Errorf("expected recommendations from both categories, got %v", names)
	}
}

func TestAnswer_FuzzyRankPrefersQueryTerms(t *testing.T) {
	a := New(nil)

	resp, err := a.Answer(context.Background(), "pandas data analysis")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if len(resp.Libraries) == 0 {
		t.Fatal("expected recommendations")
	}
	if resp.Libraries[0].Name != "pandas" {
		t.Errorf("expected pandas ranked first, got %s", resp.Libraries[0].Name)
	}
}

func TestAnswer_FallbackSearch(t *testing.T) {
	stub := &stubSearcher{result: &pypi.SearchResult{Packages: []pypi.Summary{
		{Name: "pint", Version: "0.23", Summary: "Physical quantities module"},
	}}}
	a := New(stub)

	resp, err := a.Answer(context.Background(), "unit conversion")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if stub.query != "unit conversion" {
		t.Errorf("expected full query forwarded, got %q", stub.query)
	}
	if resp.Message != "Here are some Python libraries related to 'unit conversion':" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if len(resp.Libraries) != 1 || resp.Libraries[0].Name != "pint" {
		t.Errorf("unexpected libraries %+v", resp.Libraries)
	}
}

func TestAnswer_SearchFailureDegrades(t *testing.T) {
	stub := &stubSearcher{err: errors.New(errors.ErrCodeNetwork, "index down")}
	a := New(stub)

	resp, err := a.Answer(context.Background(), "something uncategorizable")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if len(resp.Libraries) != 0 {
		t.Errorf("expected no libraries, got %d", len(resp.Libraries))
	}
	if resp.Libraries == nil {
		t.Error("expected empty slice, not nil")
	}
}

func TestAnswer_SupplementsSparseCategory(t *testing.T) {
	stub := &stubSearcher{result: &pypi.SearchResult{Packages: []pypi.Summary{
		{Name: "scapy", Version: "2.5", Summary: "Packet manipulation"},
		{Name: "pytest", Version: "8.0", Summary: "duplicate of a curated entry"},
	}}}
	a := New(stub)

	// networking has keywords but no curated libraries
	resp, err := a.Answer(context.Background(), "working with sockets")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if !strings.Contains(resp.Message, "networking") {
		t.Errorf("unexpected message %q", resp.Message)
	}
	var found bool
	for _, lib := range resp.Libraries {
		if lib.Name == "scapy" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected index supplement in %+v", resp.Libraries)
	}
}

func TestAnswer_EmptyQuery(t *testing.T) {
	a := New(nil)
	if _, err := a.Answer(context.Background(), "   "); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
