package linkfix

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/mdlinkfix/internal/config"
)

// Classifier decides which Convention a raw link target uses.
//
// It is pure: construction captures the configured helper name, canonical
// extension, and denylist, and Classify then depends only on its arguments.
type Classifier struct {
	extension string
	wrapper   *regexp.Regexp
	denylist  map[string]struct{}
}

// NewClassifier builds a Classifier from the link configuration.
func NewClassifier(cfg config.LinksConfig) *Classifier {
	denylist := make(map[string]struct{}, len(cfg.Denylist))
	for _, name := range cfg.Denylist {
		denylist[strings.ToUpper(name)] = struct{}{}
	}

	// Matches `{{ '<path>' | <helper> }}` with optional quoting and an
	// optional trailing fragment.
	wrapper := regexp.MustCompile(
		`^\{\{\s*['"]?\s*([^'"|]+?)\s*['"]?\s*\|\s*` + regexp.QuoteMeta(cfg.Helper) + `\s*\}\}(#.*)?$`)

	return &Classifier{
		extension: cfg.Extension,
		wrapper:   wrapper,
		denylist:  denylist,
	}
}

// Classify decides the convention for a raw target scanned from a document
// residing in scope.
func (c *Classifier) Classify(target string, scope Scope) Classification {
	trimmed := strings.TrimSpace(target)

	if m := c.wrapper.FindStringSubmatch(trimmed); m != nil {
		if strings.TrimPrefix(m[1], "/") == "" {
			// The site root. Stripping the slash leaves nothing to link to.
			return excluded(target)
		}
		return Classification{
			Convention: ConventionTemplateRelative,
			Raw:        target,
			Path:       m[1],
			Fragment:   m[2],
		}
	}

	path, fragment := splitFragment(trimmed)

	switch {
	case strings.TrimPrefix(path, "/") == "":
		// Pure fragment link within the same document, or the site root.
		return excluded(target)
	case hasURLScheme(path):
		return excluded(target)
	case strings.Contains(path, "{{") || strings.ContainsAny(path, " \t"):
		// Template expressions for other helpers, or targets that are not a
		// clean relative path. Guessing here could corrupt a working link.
		return excluded(target)
	}

	if scope.Subtree != "" && strings.HasPrefix(path, scope.Subtree+"/") {
		if strings.TrimPrefix(path, scope.Subtree+"/") == "" {
			// Bare subtree reference such as `commands/`; stripping the
			// prefix would leave an empty target.
			return excluded(target)
		}
		return Classification{
			Convention: ConventionPathPrefixed,
			Raw:        target,
			Path:       path,
			Fragment:   fragment,
			Subtree:    scope.Subtree,
		}
	}

	if _, denied := c.denylist[strings.ToUpper(path)]; denied {
		return excluded(target)
	}
	if c.hasCanonicalExtension(path) {
		return excluded(target)
	}

	return Classification{
		Convention: ConventionBareExtensionless,
		Raw:        target,
		Path:       path,
		Fragment:   fragment,
	}
}

func (c *Classifier) hasCanonicalExtension(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), c.extension)
}

func excluded(target string) Classification {
	return Classification{Convention: ConventionExcluded, Raw: target}
}

// splitFragment separates the `#anchor` suffix from a target. The fragment
// keeps its leading `#` so reassembly is plain concatenation.
func splitFragment(target string) (path string, fragment string) {
	idx := strings.Index(target, "#")
	if idx == -1 {
		return target, ""
	}
	return target[:idx], target[idx:]
}

// hasURLScheme reports whether the target points outside the document tree.
func hasURLScheme(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "ftp://") ||
		strings.HasPrefix(lower, "file://") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:")
}
