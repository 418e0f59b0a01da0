package markdown

import (
	"regexp"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// LinkMatch is a located inline hyperlink occurrence within a document body.
//
// Spans are byte offsets into the scanned body, End/TargetEnd exclusive, so a
// rewrite can replace exactly the target substring and leave the display text
// untouched.
type LinkMatch struct {
	Text        string // display text between the square brackets
	Target      string // raw target between the parentheses, pre-classification
	Start       int    // offset of the opening '['
	End         int    // offset just past the closing ')'
	TargetStart int
	TargetEnd   int
}

// inlineLinkPattern matches `[text](target)`. The target may contain spaces
// (template wrappers like `{{ '/path' | relative_url }}` do) but never a
// parenthesis, matching the convention of the documents this tool fixes.
var inlineLinkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^()]+)\)`)

// ScanLinks finds every inline hyperlink in body, left to right and
// non-overlapping.
//
// Link syntax inside fenced code blocks, indented code blocks, and inline
// code spans is never matched: those regions are blanked out via a Goldmark
// parse before the regex pass, so code samples containing link-like text
// survive rewriting byte-identically. Image constructs (`![alt](src)`) are
// not hyperlinks and are skipped.
func ScanLinks(body []byte) []LinkMatch {
	if len(body) == 0 {
		return nil
	}

	masked := maskCodeRegions(body)

	idxs := inlineLinkPattern.FindAllSubmatchIndex(masked, -1)
	matches := make([]LinkMatch, 0, len(idxs))
	for _, m := range idxs {
		start := m[0]
		if start > 0 && body[start-1] == '!' {
			continue
		}
		matches = append(matches, LinkMatch{
			Text:        string(body[m[2]:m[3]]),
			Target:      string(body[m[4]:m[5]]),
			Start:       start,
			End:         m[1],
			TargetStart: m[4],
			TargetEnd:   m[5],
		})
	}
	return matches
}

// maskCodeRegions returns a copy of body with every code region overwritten
// by spaces (newlines kept, so offsets and line structure are preserved).
func maskCodeRegions(body []byte) []byte {
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(body))

	masked := append([]byte(nil), body...)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.FencedCodeBlock:
			blankSegments(masked, node.Lines())
		case *gmast.CodeBlock:
			blankSegments(masked, node.Lines())
		case *gmast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*gmast.Text); ok {
					blankRange(masked, t.Segment.Start, t.Segment.Stop)
				}
			}
		}
		return gmast.WalkContinue, nil
	})
	return masked
}

func blankSegments(buf []byte, lines *gmtext.Segments) {
	if lines == nil {
		return
	}
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		blankRange(buf, seg.Start, seg.Stop)
	}
}

func blankRange(buf []byte, start, stop int) {
	if start < 0 {
		start = 0
	}
	if stop > len(buf) {
		stop = len(buf)
	}
	for i := start; i < stop; i++ {
		if buf[i] != '\n' && buf[i] != '\r' {
			buf[i] = ' '
		}
	}
}
