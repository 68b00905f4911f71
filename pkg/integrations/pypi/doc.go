// Package pypi provides a client for the PyPI package index.
//
// Two upstream APIs are used: the JSON API (https://pypi.org/pypi/<name>/json)
// for per-package metadata and release files, and the Simple v1 JSON index
// (https://pypi.org/simple/) for the full project-name list that backs
// search. Responses are cached through the shared integrations client;
// the Simple index in particular is large and should be backed by a
// persistent cache with a generous TTL.
//
// Package names are matched after PEP 503 normalization (lowercase,
// runs of -_. collapsed to a single hyphen).
package pypi
