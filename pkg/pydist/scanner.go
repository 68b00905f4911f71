package pydist

import (
	"bufio"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Placeholder values used when distribution metadata is missing,
// matching what the API has always returned for unknown fields.
const (
	UnknownVersion = "Unknown"
	NoSummary      = "No description available"
)

// Distribution describes one installed Python distribution.
type Distribution struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Summary string `json:"summary"`

	// InfoDir is the absolute path of the .dist-info directory.
	InfoDir string `json:"-"`
}

// Env is a view over a set of site-packages roots.
// An Env holds no state beyond its root list and is safe for concurrent use.
type Env struct {
	roots []string
}

// NewEnv creates an Env scanning the given site-packages roots.
// Roots that don't exist are tolerated and simply yield nothing.
func NewEnv(roots ...string) *Env {
	return &Env{roots: roots}
}

// DefaultRoots returns site-packages candidates for the current host:
// entries from PYTHONPATH plus the usual system and venv locations.
func DefaultRoots() []string {
	var roots []string
	for _, p := range filepath.SplitList(os.Getenv("PYTHONPATH")) {
		if p != "" {
			roots = append(roots, p)
		}
	}

	patterns := []string{
		"/usr/lib/python3*/site-packages",
		"/usr/lib/python3*/dist-packages",
		"/usr/local/lib/python3*/site-packages",
		"/usr/local/lib/python3*/dist-packages",
	}
	if venv := os.Getenv("VIRTUAL_ENV"); venv != "" {
		patterns = append(patterns, filepath.Join(venv, "lib", "python3*", "site-packages"))
	}
	for _, pat := range patterns {
		matches, _ := filepath.Glob(pat)
		roots = append(roots, matches...)
	}
	return roots
}

// Roots returns the configured site-packages roots.
func (e *Env) Roots() []string { return e.roots }

// List scans all roots and returns every discoverable distribution,
// sorted by name. Results are rebuilt on every call; nothing is cached.
func (e *Env) List() []Distribution {
	var dists []Distribution
	seen := make(map[string]int) // normalized name -> index, last-seen wins

	for _, root := range e.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || !strings.HasSuffix(entry.Name(), ".dist-info") {
				continue
			}
			infoDir := filepath.Join(root, entry.Name())
			dist, err := readDistInfo(infoDir)
			if err != nil {
				continue
			}
			key := Normalize(dist.Name)
			if i, ok := seen[key]; ok {
				dists[i] = dist
				continue
			}
			seen[key] = len(dists)
			dists = append(dists, dist)
		}
	}

	sort.Slice(dists, func(i, j int) bool {
		return strings.ToLower(dists[i].Name) < strings.ToLower(dists[j].Name)
	})
	return dists
}

// SearchLimit caps the number of search results returned.
const SearchLimit = 20

// Search returns installed distributions whose name contains query,
// case-insensitively, capped at [SearchLimit] results.
func (e *Env) Search(query string) []Distribution {
	query = strings.ToLower(strings.TrimSpace(query))

	out := []Distribution{}
	for _, dist := range e.List() {
		if !strings.Contains(strings.ToLower(dist.Name), query) {
			continue
		}
		out = append(out, dist)
		if len(out) == SearchLimit {
			break
		}
	}
	return out
}

// Distribution looks up one installed distribution by name.
// Matching uses PEP 503 normalization, so "Flask", "flask" and "FLASK"
// all resolve to the same distribution.
func (e *Env) Distribution(name string) (Distribution, bool) {
	want := Normalize(name)
	for _, dist := range e.List() {
		if Normalize(dist.Name) == want {
			return dist, true
		}
	}
	return Distribution{}, false
}

// Metadata returns name/version/summary for a library. When the library's
// module exists but no distribution metadata does (common for stdlib and
// hand-installed modules), the missing fields degrade to placeholders
// rather than failing.
func (e *Env) Metadata(name string) Distribution {
	if dist, ok := e.Distribution(name); ok {
		dist.Name = name
		return dist
	}
	return Distribution{
		Name:    name,
		Version: UnknownVersion,
		Summary: NoSummary,
	}
}

// readDistInfo parses the METADATA file inside a .dist-info directory.
func readDistInfo(infoDir string) (Distribution, error) {
	f, err := os.Open(filepath.Join(infoDir, "METADATA"))
	if err != nil {
		return Distribution{}, err
	}
	defer f.Close()

	// METADATA uses RFC 822 style headers; the long description in the
	// body (after the blank line) is not needed here.
	header, err := textproto.NewReader(bufio.NewReader(f)).ReadMIMEHeader()
	if err != nil && len(header) == 0 {
		return Distribution{}, err
	}

	dist := Distribution{
		Name:    header.Get("Name"),
		Version: header.Get("Version"),
		Summary: header.Get("Summary"),
		InfoDir: infoDir,
	}
	if dist.Name == "" {
		dist.Name = strings.SplitN(filepath.Base(infoDir), "-", 2)[0]
	}
	if dist.Version == "" {
		dist.Version = UnknownVersion
	}
	if dist.Summary == "" {
		dist.Summary = NoSummary
	}
	return dist, nil
}

// topLevelModules reads top_level.txt from a distribution's .dist-info
// directory, listing the importable module names the distribution installs.
func topLevelModules(infoDir string) []string {
	data, err := os.ReadFile(filepath.Join(infoDir, "top_level.txt"))
	if err != nil {
		return nil
	}
	var mods []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			mods = append(mods, line)
		}
	}
	return mods
}

var normalizeRE = regexp.MustCompile(`[-_.]+`)

// Normalize converts a distribution name to its canonical PEP 503 form:
// lowercase, with runs of hyphens, underscores, and dots collapsed to a
// single hyphen.
func Normalize(name string) string {
	return normalizeRE.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
