package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

// searchServer serves a Simple v1 index with the given project names and
// a minimal JSON API response for each of them.
func searchServer(t *testing.T, names ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/simple/" {
			if got := r.Header.Get("Accept"); got != "application/vnd.pypi.simple.v1+json" {
				t.Errorf("unexpected Accept header %q", got)
			}
			index := simpleIndex{}
			for _, n := range names {
				index.Projects = append(index.Projects, simpleProject{Name: n})
			}
			json.NewEncoder(w).Encode(index)
			return
		}
		for _, n := range names {
			if r.URL.Path == fmt.Sprintf("/pypi/%s/json", strings.ToLower(n)) {
				json.NewEncoder(w).Encode(apiResponse{Info: apiInfo{
					Name:    n,
					Version: "1.0.0",
					Summary: "summary of " + n,
				}})
				return
			}
		}
		http.NotFound(w, r)
	}))
}

func TestClient_Search(t *testing.T) {
	server := searchServer(t, "requests", "requests-oauthlib", "types-requests", "numpy")
	defer server.Close()

	c := testClient(t, server.URL)

	result, err := c.Search(context.Background(), Query{Query: "requests"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 3 {
		t.Errorf("expected 3 matches, got %d", result.Total)
	}
	if result.Page != 1 || result.Pages != 1 {
		t.Errorf("unexpected paging: page %d of %d", result.Page, result.Pages)
	}

	var got []string
	for _, p := range result.Packages {
		got = append(got, p.Name)
	}
	want := []string{"requests", "requests-oauthlib", "types-requests"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if result.Packages[0].Summary != "summary of requests" {
		t.Errorf("expected hydrated summary, got %q", result.Packages[0].Summary)
	}
}

func TestClient_Search_Relevance(t *testing.T) {
	server := searchServer(t, "types-requests", "requests-oauthlib", "requests")
	defer server.Close()

	c := testClient(t, server.URL)

	result, err := c.Search(context.Background(), Query{Query: "requests", SortBy: "relevance"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Packages[0].Name != "requests" {
		t.Errorf("expected exact match first, got %s", result.Packages[0].Name)
	}
	if result.Packages[1].Name != "requests-oauthlib" {
		t.Errorf("expected prefix match second, got %s", result.Packages[1].Name)
	}
}

func TestClient_Search_ExactMatch(t *testing.T) {
	server := searchServer(t, "Flask", "flask-login", "flask-cors")
	defer server.Close()

	c := testClient(t, server.URL)

	result, err := c.Search(context.Background(), Query{Query: "flask", ExactMatch: true})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 1 || result.Packages[0].Name != "Flask" {
		t.Errorf("expected single exact match Flask, got %+v", result.Packages)
	}
}

func TestClient_Search_Paging(t *testing.T) {
	names := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		names = append(names, fmt.Sprintf("tool-%02d", i))
	}
	server := searchServer(t, names...)
	defer server.Close()

	c := testClient(t, server.URL)

	result, err := c.Search(context.Background(), Query{Query: "tool", Page: 2, PerPage: 10})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.Total != 25 || result.Pages != 3 {
		t.Errorf("unexpected totals: %d in %d pages", result.Total, result.Pages)
	}
	if len(result.Packages) != 10 {
		t.Fatalf("expected 10 results, got %d", len(result.Packages))
	}
	if result.Packages[0].Name != "tool-10" {
		t.Errorf("expected page to start at tool-10, got %s", result.Packages[0].Name)
	}
}

func TestClient_Search_PageBeyondEnd(t *testing.T) {
	server := searchServer(t, "numpy")
	defer server.Close()

	c := testClient(t, server.URL)

	result, err := c.Search(context.Background(), Query{Query: "numpy", Page: 9})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result.Packages) != 0 {
		t.Errorf("expected empty page, got %d results", len(result.Packages))
	}
	if result.Total != 1 {
		t.Errorf("expected total 1, got %d", result.Total)
	}
}

func TestClient_Search_HydrationDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/simple/" {
			json.NewEncoder(w).Encode(simpleIndex{Projects: []simpleProject{{Name: "ghost"}}})
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	result, err := c.Search(context.Background(), Query{Query: "ghost"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(result.Packages) != 1 {
		t.Fatalf("expected 1 result, got %d", len(result.Packages))
	}
	if got := result.Packages[0]; got.Name != "ghost" || got.Version != "" {
		t.Errorf("expected bare name on hydration failure, got %+v", got)
	}
}

func TestClient_Search_InvalidInput(t *testing.T) {
	c := testClient(t, "http://unused.invalid")

	if _, err := c.Search(context.Background(), Query{Query: "   "}); err == nil {
		t.Error("expected error for blank query")
	}
	if _, err := c.Search(context.Background(), Query{Query: "x", SortBy: "stars"}); err == nil {
		t.Error("expected error for unknown sort_by")
	}
}
