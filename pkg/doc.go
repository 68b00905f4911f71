// Package pkg provides the core libraries for the liblens Python library
// explorer.
//
// # Overview
//
// Liblens answers questions about the Python libraries installed on a
// machine without running any Python. The pkg directory is organized
// into five main areas:
//
//  1. [pydist] - Installed-distribution discovery (dist-info metadata, module resolution)
//  2. [introspect] - Static parsing of module source into classes, functions, and constants
//  3. [integrations] - External API clients (the PyPI index)
//  4. [assistant] - Natural-language library recommendations
//  5. [render] - Structure diagrams (DOT and SVG)
//
// Supporting packages: [cache] for response and parse caching, [errors]
// for structured error codes shared by the CLI and the HTTP API, and
// [buildinfo] for ldflags-injected version data.
//
// # Architecture
//
// The typical flow for an introspection request:
//
//	site-packages roots
//	         ↓
//	pydist (resolve distribution + module file)
//	         ↓
//	introspect (parse source, cache the index)
//	         ↓
//	API / CLI presentation
//
// Package-index requests go through integrations/pypi with responses
// cached via cache.Cache backends (memory, disk, or Redis).
package pkg
