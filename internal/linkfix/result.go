package linkfix

// Result accumulates the outcome of one full run over a document tree.
//
// The original workflow kept a module-level "files fixed" counter; an
// explicit accumulator keeps the engine pure and lets callers (CLI summary,
// watch-mode metrics, tests) consume the same facts.
type Result struct {
	// Found is the number of documents discovered under the root.
	Found int
	// Fixed holds root-relative paths of documents actually rewritten (or,
	// in dry-run mode, documents that would be rewritten), in walk order.
	Fixed []string
	// Errors holds per-document failures. A failed document is skipped; it
	// never aborts the run.
	Errors []DocError
}

// DocError ties a per-document failure to the document's identity.
type DocError struct {
	Doc string
	Err error
}

// FixedCount returns the number of changed documents.
func (r *Result) FixedCount() int {
	return len(r.Fixed)
}

// Clean reports whether the run changed nothing and saw no failures.
func (r *Result) Clean() bool {
	return len(r.Fixed) == 0 && len(r.Errors) == 0
}
