package linkfix

import (
	"bytes"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"git.home.luguber.info/inful/mdlinkfix/internal/config"
	"git.home.luguber.info/inful/mdlinkfix/internal/foundation/errors"
	"git.home.luguber.info/inful/mdlinkfix/internal/frontmatter"
	"git.home.luguber.info/inful/mdlinkfix/internal/logfields"
	"git.home.luguber.info/inful/mdlinkfix/internal/markdown"
)

// Fixer normalizes links across a document tree: scan, classify, rewrite,
// and write back only documents whose bytes actually changed.
type Fixer struct {
	cfg        *config.Config
	classifier *Classifier
	rewriter   *Rewriter

	// DryRun computes and reports changes without writing anything.
	DryRun bool
}

// NewFixer builds a Fixer from the loaded configuration.
func NewFixer(cfg *config.Config) *Fixer {
	return &Fixer{
		cfg:        cfg,
		classifier: NewClassifier(cfg.Links),
		rewriter:   NewRewriter(cfg.Links.Extension),
	}
}

// FixTree processes every document under root, one at a time in lexical walk
// order. A missing root is a fatal environment error reported before any
// document is touched; per-document failures are recorded in the Result and
// processing continues.
func (f *Fixer) FixTree(root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "docs directory not found").
			Fatal().
			WithContext("path", root).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.ConfigError("docs path is not a directory").
			WithContext("path", root).
			Build()
	}

	result := &Result{}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: record and keep walking the rest.
			result.Errors = append(result.Errors, DocError{Doc: path, Err: err})
			slog.Error("Failed to enumerate documents", logfields.Doc(path), logfields.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, f.cfg.Links.Extension) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if f.skipDoc(rel) {
			return nil
		}

		result.Found++

		changed, fixErr := f.FixFile(path, f.scopeFor(rel))
		if fixErr != nil {
			result.Errors = append(result.Errors, DocError{Doc: rel, Err: fixErr})
			slog.Error("Failed to process document", logfields.Doc(rel), logfields.Error(fixErr))
			return nil
		}
		if changed {
			result.Fixed = append(result.Fixed, rel)
			slog.Debug("Fixed document links", logfields.Doc(rel))
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.WrapError(walkErr, errors.CategoryFileSystem, "failed to walk docs directory").
			WithContext("path", root).
			Build()
	}

	return result, nil
}

// FixFile normalizes the links of a single document. It reports whether the
// document changed; in dry-run mode it reports without writing.
//
// The write is all-or-nothing: either the full new content replaces the file
// or the file is left untouched. Unchanged documents are never rewritten.
func (f *Fixer) FixFile(path string, scope Scope) (bool, error) {
	// #nosec G304 -- path comes from the tree walk, not user input.
	content, err := os.ReadFile(path)
	if err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to read document").
			WithContext("path", path).
			Build()
	}

	fmRaw, body, had, style, err := frontmatter.Split(content)
	if err != nil {
		return false, errors.WrapError(err, errors.CategoryValidation, "failed to split frontmatter").
			WithContext("path", path).
			Build()
	}

	edits := f.rewriteEdits(body, scope)
	if len(edits) == 0 {
		return false, nil
	}

	newBody, err := markdown.ApplyEdits(body, edits)
	if err != nil {
		return false, errors.WrapError(err, errors.CategoryInternal, "failed to apply link edits").
			WithContext("path", path).
			Build()
	}

	newContent := frontmatter.Join(fmRaw, newBody, had, style)
	if bytes.Equal(newContent, content) {
		return false, nil
	}

	if f.DryRun {
		return true, nil
	}

	if err := os.WriteFile(path, newContent, 0o600); err != nil {
		return false, errors.WrapError(err, errors.CategoryFileSystem, "failed to write document").
			WithContext("path", path).
			Build()
	}
	return true, nil
}

// rewriteEdits scans body and turns every eligible link into a target-span
// edit. Display text spans are never edited.
func (f *Fixer) rewriteEdits(body []byte, scope Scope) []markdown.Edit {
	matches := markdown.ScanLinks(body)

	edits := make([]markdown.Edit, 0, len(matches))
	for _, m := range matches {
		cls := f.classifier.Classify(m.Target, scope)
		res := f.rewriter.Rewrite(cls)
		if !res.Changed {
			continue
		}
		edits = append(edits, markdown.Edit{
			Start:       m.TargetStart,
			End:         m.TargetEnd,
			Replacement: []byte(res.Target),
		})
	}
	return edits
}

// scopeFor derives the subtree scope from a root-relative document path.
func (f *Fixer) scopeFor(rel string) Scope {
	first, _, found := strings.Cut(rel, "/")
	if !found {
		return Scope{}
	}
	for _, dir := range f.cfg.Links.ScopedDirs {
		if first == dir {
			return Scope{Subtree: dir}
		}
	}
	return Scope{}
}

// skipDoc reports whether a root-relative path matches any configured
// exclude glob.
func (f *Fixer) skipDoc(rel string) bool {
	for _, pattern := range f.cfg.Docs.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
