// Package frontmatter splits YAML frontmatter from Markdown page bodies.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter is returned when a frontmatter block opens with
// `---` but never closes.
var ErrMissingClosingDelimiter = errors.New("frontmatter: missing closing delimiter")

// Meta holds the typed frontmatter fields docpress understands. Unknown keys
// are preserved in Extra.
type Meta struct {
	Title  string         `yaml:"title,omitempty"`
	Weight int            `yaml:"weight,omitempty"`
	Draft  bool           `yaml:"draft,omitempty"`
	Extra  map[string]any `yaml:",inline"`
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a frontmatter delimiter, had is false
// and body is the full input. Both CRLF and LF newline styles are accepted.
func Split(content []byte) (raw []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[start:], closeLine) {
		return []byte{}, content[start+len(closeLine):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, nil
}

// Parse decodes raw frontmatter (without --- delimiters) into Meta.
func Parse(raw []byte) (Meta, error) {
	var meta Meta
	if len(raw) == 0 {
		return meta, nil
	}
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return Meta{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, nil
}

// detectNewline inspects the first line break to decide the newline style.
func detectNewline(content []byte) string {
	idx := bytes.IndexByte(content, '\n')
	if idx > 0 && content[idx-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
