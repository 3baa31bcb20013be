// Package http implements the breach range mock served by cmd/rangemock.
//
// It answers GET /range/{prefix} the way a k-anonymity breach service does:
// a plain-text list of SUFFIX:COUNT lines for every known hash that starts
// with the five character prefix. Access logging and request tracing are
// handled by middleware in this package.
package http
