package pypi

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/liblens/liblens/pkg/cache"
	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/integrations"
	"github.com/liblens/liblens/pkg/pydist"
)

// DefaultBaseURL is the production PyPI endpoint.
const DefaultBaseURL = "https://pypi.org"

// Info holds the metadata block of a PyPI package.
type Info struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Summary      string            `json:"summary"`
	Description  string            `json:"description,omitempty"`
	License      string            `json:"license,omitempty"`
	Author       string            `json:"author,omitempty"`
	HomePage     string            `json:"home_page,omitempty"`
	ProjectURLs  map[string]string `json:"project_urls,omitempty"`
	RequiresDist []string          `json:"requires_dist,omitempty"`
}

// ReleaseFile is one uploaded artifact of a release.
type ReleaseFile struct {
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	PackageType string `json:"packagetype"`
	UploadTime  string `json:"upload_time,omitempty"`
}

// Release is one published version of a package with its files.
type Release struct {
	Version string        `json:"version"`
	Files   []ReleaseFile `json:"files"`
}

// Package is the metadata for a package plus its release history,
// newest release first.
type Package struct {
	Info     Info      `json:"info"`
	Releases []Release `json:"releases"`
}

// Client provides access to the PyPI index APIs.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PyPI client caching responses in backend for ttl.
// An empty baseURL selects DefaultBaseURL.
func NewClient(backend cache.Cache, ttl time.Duration, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(backend, "pypi:", ttl, nil),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchPackage retrieves metadata and releases for a package.
//
// The name is normalized per PEP 503 before the request. If refresh is
// true the cache is bypassed. Returns a PACKAGE_NOT_FOUND error when the
// index has no such project and a NETWORK error on upstream failures.
func (c *Client) FetchPackage(ctx context.Context, name string, refresh bool) (*Package, error) {
	name = pydist.Normalize(strings.TrimSpace(name))
	if name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "package name is required")
	}

	var pkg Package
	err := c.Cached(ctx, name, refresh, &pkg, func() error {
		return c.fetch(ctx, name, &pkg)
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (c *Client) fetch(ctx context.Context, name string, pkg *Package) error {
	var data apiResponse
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, name)
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, errors.ErrCodePackageNotFound) {
			return errors.New(errors.ErrCodePackageNotFound, "package '%s' not found on PyPI", name)
		}
		return err
	}

	urls := make(map[string]string, len(data.Info.ProjectURLs))
	for k, v := range data.Info.ProjectURLs {
		if s, ok := v.(string); ok {
			urls[k] = s
		}
	}

	pkg.Info = Info{
		Name:         data.Info.Name,
		Version:      data.Info.Version,
		Summary:      data.Info.Summary,
		Description:  data.Info.Description,
		License:      data.Info.License,
		Author:       data.Info.Author,
		HomePage:     data.Info.HomePage,
		ProjectURLs:  urls,
		RequiresDist: data.Info.RequiresDist,
	}
	pkg.Releases = sortReleases(data.Releases)
	return nil
}

// sortReleases flattens the JSON API's version→files map into a slice
// ordered newest first. PyPI versions are not reliably semver, so the
// upload time of the first file decides; versions without files sort last.
func sortReleases(raw map[string][]apiFile) []Release {
	releases := make([]Release, 0, len(raw))
	for version, files := range raw {
		rel := Release{Version: version}
		for _, f := range files {
			rel.Files = append(rel.Files, ReleaseFile{
				Filename:    f.Filename,
				URL:         f.URL,
				Size:        f.Size,
				PackageType: f.PackageType,
				UploadTime:  f.UploadTime,
			})
		}
		releases = append(releases, rel)
	}
	sort.Slice(releases, func(i, j int) bool {
		ti, tj := releaseTime(releases[i]), releaseTime(releases[j])
		if ti != tj {
			return ti > tj
		}
		return releases[i].Version > releases[j].Version
	})
	return releases
}

func releaseTime(r Release) string {
	if len(r.Files) == 0 {
		return ""
	}
	return r.Files[0].UploadTime
}

type apiResponse struct {
	Info     apiInfo              `json:"info"`
	Releases map[string][]apiFile `json:"releases"`
}

type apiInfo struct {
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	Summary      string         `json:"summary"`
	Description  string         `json:"description"`
	License      string         `json:"license"`
	Author       string         `json:"author"`
	HomePage     string         `json:"home_page"`
	ProjectURLs  map[string]any `json:"project_urls"`
	RequiresDist []string       `json:"requires_dist"`
}

type apiFile struct {
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	PackageType string `json:"packagetype"`
	UploadTime  string `json:"upload_time_iso_8601"`
}
