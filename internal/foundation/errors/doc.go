// Package errors provides classified errors for mdlinkfix.
//
// The link fixer distinguishes two failure kinds: environment errors (the
// docs root or config is unusable; fatal, nothing is processed) and
// per-document filesystem errors (one document is skipped, the run
// continues). ClassifiedError makes that distinction a typed property
// instead of a printed string, so both the CLI and the tests can branch on
// error category.
package errors
