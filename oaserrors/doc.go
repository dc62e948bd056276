// Package oaserrors provides structured error types for oasreduce.
//
// Import path: github.com/erraggy/oasreduce/oaserrors
//
// Every error type has a matching sentinel so callers can branch with [errors.Is]
// and pull details out with [errors.As]:
//
//   - [ParseError] / [ErrParse]: the input could not be decoded as a JSON or YAML object
//   - [ValidationError] / [ErrValidation]: the document lacks a usable "paths" object
//   - [ResourceLimitError] / [ErrResourceLimit]: input exceeded a configured size limit
//   - [ConfigError] / [ErrConfig]: invalid options or missing inputs such as endpoints
//
// The reducer never returns a partially built document: it either succeeds or
// fails with one of these errors before producing output. Callers that want to
// degrade gracefully can fall back to the unreduced document:
//
//	reduced, err := reducer.Reduce(root, endpoints)
//	if errors.Is(err, oaserrors.ErrValidation) {
//	    reduced = root
//	}
package oaserrors
