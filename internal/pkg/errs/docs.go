// Package errs provides the typed errors shared by the vacancy bot packages.
//
// Every error type pairs a sentinel (ErrObjectNotFound, ErrValueIsRequired, ...)
// with a struct carrying the offending parameter. The struct unwraps to its
// sentinel, so callers branch with errors.Is while logs still get the detail:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return queries.ErrSearchNotFound
//	}
//
// Constructors come in two flavours, with and without an underlying cause.
package errs
