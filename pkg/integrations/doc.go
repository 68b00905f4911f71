// Package integrations provides shared HTTP plumbing for package-index
// clients.
//
// The [Client] handles request construction, default headers, JSON
// decoding, response caching, and the mapping of HTTP status codes onto
// the application's structured error codes. Registry-specific clients
// (see the pypi subpackage) embed it and add their endpoints.
//
// Failures surface immediately: there is no retry or backoff anywhere in
// this layer, so a single upstream error becomes a single error to the
// caller.
package integrations
