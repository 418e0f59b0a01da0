package frontmatter

import (
	"bytes"
	"errors"
)

// Style captures formatting details needed for stable rewriting.
//
// The fixer must write back documents byte-identically except for the links
// it changed, so the newline flavor and closing-delimiter shape detected at
// split time are reused at join time.
type Style struct {
	Newline string
	// ClosedWithNewline records whether the closing delimiter line ended
	// with a newline. A document may end exactly at the closing `---`.
	ClosedWithNewline bool
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a YAML frontmatter delimiter, had is
// false and body is the full input. Frontmatter bytes are returned raw and
// unparsed; the link fixer never rewrites inside frontmatter.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, style Style, err error) {
	style = Style{Newline: detectNewline(content), ClosedWithNewline: true}

	nl := style.Newline
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style, nil
	}

	frontmatterStart := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[frontmatterStart:], closeLine) {
		bodyStart := frontmatterStart + len(closeLine)
		return []byte{}, content[bodyStart:], true, style, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[frontmatterStart:], closeSeq)
	if idx >= 0 {
		frontmatterEnd := frontmatterStart + idx + len(nl)
		bodyStart := frontmatterStart + idx + len(closeSeq)
		return content[frontmatterStart:frontmatterEnd], content[bodyStart:], true, style, nil
	}

	// The closing delimiter may be the very last line, with no newline
	// after it.
	if tail := []byte(nl + "---"); bytes.HasSuffix(content, tail) && len(content)-len("---") >= frontmatterStart {
		style.ClosedWithNewline = false
		frontmatterEnd := len(content) - len("---")
		return content[frontmatterStart:frontmatterEnd], []byte{}, true, style, nil
	}

	return nil, nil, false, style, ErrMissingClosingDelimiter
}

// Join reassembles a document from raw frontmatter and body.
//
// If had is false, Join returns body as-is.
func Join(frontmatter []byte, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}

	open := []byte("---" + nl)

	out := make([]byte, 0, 2*len(open)+len(frontmatter)+len(body))
	out = append(out, open...)
	out = append(out, frontmatter...)
	out = append(out, "---"...)
	if style.ClosedWithNewline {
		out = append(out, nl...)
	}
	out = append(out, body...)
	return out
}

func detectNewline(content []byte) string {
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			if i > 0 && content[i-1] == '\r' {
				return "\r\n"
			}
			return "\n"
		}
	}
	return "\n"
}
