// Package pydist discovers Python distributions installed under a set of
// site-packages directories.
//
// A distribution is identified by its .dist-info directory, whose METADATA
// file (RFC 822 style headers) supplies the name, version, and summary
// shown in search results. The package also resolves a library name to the
// module file that defines its top level, consulting top_level.txt when
// the distribution name and the importable module name differ (e.g. the
// scikit-learn distribution installs the sklearn module).
//
// Discovery is purely filesystem based: nothing is executed, and modules
// shipped only as compiled extensions are reported as binary so callers
// can produce a "source unavailable" result instead of failing.
package pydist
