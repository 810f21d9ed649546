// Package document defines the immutable page model produced by the loader
// and consumed by the renderer.
package document

import (
	"crypto/sha256"
	"encoding/hex"

	"git.home.luguber.info/inful/docpress/internal/frontmatter"
)

// Document represents one loaded documentation page.
//
// A Document is created once at load time and never mutated afterwards;
// rendering reads it together with the surrounding Set.
type Document struct {
	Slug        string           // Stable identifier, unique within a Set
	SourcePath  string           // Path relative to the docs root (forward slashes)
	Raw         []byte           // Original file content
	Body        []byte           // Markdown body with frontmatter stripped
	Meta        frontmatter.Meta // Parsed frontmatter
	Title       string           // Frontmatter title, else first heading, else slug
	ContentHash string           // sha256 of Raw, hex encoded
}

// HashContent computes the hex-encoded sha256 of raw page content.
func HashContent(raw []byte) string {
	h := sha256.Sum256(raw)
	return hex.EncodeToString(h[:])
}

// Weight returns the ordering weight from frontmatter. Pages without an
// explicit weight sort after weighted ones, alphabetically by slug.
func (d *Document) Weight() int {
	return d.Meta.Weight
}

// RenderedPath returns the site-relative output path for a slug.
func RenderedPath(slug string) string {
	return "/" + slug + ".html"
}

// OutputFile returns the output file path (relative, no leading slash) for a slug.
func OutputFile(slug string) string {
	return slug + ".html"
}
