package linkfix

// Convention tags which linking convention a scanned target uses, deciding
// the rewrite applied to it.
type Convention string

const (
	// ConventionTemplateRelative marks targets wrapped in a template helper
	// expression, e.g. `{{ '/setup' | relative_url }}#install`.
	ConventionTemplateRelative Convention = "template_relative"
	// ConventionBareExtensionless marks same-tree relative paths lacking the
	// canonical extension, e.g. `/setup` or `setup`.
	ConventionBareExtensionless Convention = "bare_extensionless"
	// ConventionPathPrefixed marks targets that repeat the scoped subtree the
	// referencing document already lives in, e.g. `commands/build.md` linked
	// from a document under `commands/`.
	ConventionPathPrefixed Convention = "path_prefixed"
	// ConventionExcluded marks targets that are never rewritten: external
	// URLs, mail links, pure fragments, denylisted bare filenames, and
	// already-canonical links. Anything the classifier cannot place cleanly
	// also lands here rather than being guessed at.
	ConventionExcluded Convention = "excluded"
)

// Scope describes where the referencing document lives relative to the
// configured scoped subtrees.
type Scope struct {
	// Subtree is the scoped directory name the referencing document resides
	// under, or empty when it is outside every scoped subtree.
	Subtree string
}

// Classification is the classifier's decision for one raw link target.
//
// Path holds the unwrapped target with the fragment removed; Fragment holds
// the `#anchor` suffix including the separator, or empty. Raw is the original
// target verbatim, used to detect no-op rewrites.
type Classification struct {
	Convention Convention
	Raw        string
	Path       string
	Fragment   string
	Subtree    string // set for ConventionPathPrefixed
}
