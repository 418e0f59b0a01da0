package linkfix

import "strings"

// RewriteResult is the replacement target for a classified link, or "no
// change" when Changed is false. Display text is never part of the result:
// rewrites touch only the target reference.
type RewriteResult struct {
	Target  string
	Changed bool
}

// Rewriter turns a Classification into the canonical target form. It is a
// pure function of the classification; no I/O, no randomness.
type Rewriter struct {
	extension string
}

// NewRewriter builds a Rewriter appending the given canonical extension.
func NewRewriter(extension string) *Rewriter {
	return &Rewriter{extension: extension}
}

// Rewrite produces the canonical replacement target for cls.
func (r *Rewriter) Rewrite(cls Classification) RewriteResult {
	var path string

	switch cls.Convention {
	case ConventionExcluded:
		return RewriteResult{Target: cls.Raw, Changed: false}

	case ConventionTemplateRelative, ConventionBareExtensionless:
		path = strings.TrimPrefix(cls.Path, "/")
		path = r.appendExtension(path)

	case ConventionPathPrefixed:
		path = strings.TrimPrefix(cls.Path, cls.Subtree+"/")
		path = r.appendExtension(path)

	default:
		return RewriteResult{Target: cls.Raw, Changed: false}
	}

	if path == "" {
		// Nothing left after stripping; emitting an empty target would
		// corrupt the link.
		return RewriteResult{Target: cls.Raw, Changed: false}
	}

	target := path + cls.Fragment
	return RewriteResult{Target: target, Changed: target != cls.Raw}
}

// appendExtension adds the canonical extension unless the path already
// carries it or cannot take one (schemes unwrapped from template helpers,
// in-document anchors, empty paths).
func (r *Rewriter) appendExtension(path string) string {
	if path == "" || strings.HasPrefix(path, "#") || hasURLScheme(path) {
		return path
	}
	if strings.HasSuffix(strings.ToLower(path), r.extension) {
		return path
	}
	return path + r.extension
}
