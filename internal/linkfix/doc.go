// Package linkfix implements the link normalization engine: classify each
// scanned link target into a convention (template wrapper, bare
// extensionless path, redundant subtree prefix, or excluded), rewrite it
// into the canonical relative-path-with-extension form, and update documents
// in place only when their bytes actually change.
//
// The engine is idempotent: running it over already-canonical output
// classifies every link as excluded and writes nothing.
package linkfix
