package main

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/mdlinkfix/internal/config"
	"git.home.luguber.info/inful/mdlinkfix/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkfix/internal/linkfix"
)

// runFix executes one pass over the tree. Fatal environment errors terminate
// via the adapter; per-document errors are already inside the Result.
func runFix(adapter *errors.CLIErrorAdapter, cfg *config.Config, root string, dryRun bool) *linkfix.Result {
	fixer := linkfix.NewFixer(cfg)
	fixer.DryRun = dryRun

	result, err := fixer.FixTree(root)
	if err != nil {
		adapter.HandleError(err)
	}
	return result
}

// printSummary writes the human-readable run report: documents found, one
// line per changed document, and the changed count.
func printSummary(w io.Writer, result *linkfix.Result, dryRun bool) {
	fmt.Fprintf(w, "Found %d markdown files\n", result.Found)

	verb := "Fixed"
	if dryRun {
		verb = "Would fix"
	}
	for _, doc := range result.Fixed {
		fmt.Fprintf(w, "  %s: %s\n", verb, doc)
	}
	for _, docErr := range result.Errors {
		fmt.Fprintf(w, "  Skipped: %s (%v)\n", docErr.Doc, docErr.Err)
	}

	fmt.Fprintf(w, "%s %d files\n", verb, result.FixedCount())
}
