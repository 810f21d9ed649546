package document

import (
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// SlugFromPath derives a stable identifier from a source path relative to
// the docs root. The extension is dropped, separators are normalized to
// forward slashes, and the result is NFC-normalized and case-folded so that
// the same logical page always maps to the same slug regardless of how the
// filesystem reported its name.
func SlugFromPath(rel string) string {
	s := strings.ReplaceAll(rel, "\\", "/")
	s = strings.Trim(s, "/")
	s = strings.TrimSuffix(s, path.Ext(s))
	s = norm.NFC.String(s)
	s = lower.String(s)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

// SlugFromLink derives the slug a Markdown link destination refers to,
// resolved relative to the linking document's slug. Returns false when the
// destination is not an internal page link (external URL, anchor, or empty).
func SlugFromLink(fromSlug, dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") {
		return "", false
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return "", false
	}

	// Drop anchor and query parts before resolving.
	if i := strings.IndexAny(dest, "#?"); i >= 0 {
		dest = dest[:i]
	}
	if dest == "" {
		return "", false
	}

	ext := strings.ToLower(path.Ext(dest))
	if ext != ".md" && ext != ".markdown" {
		return "", false
	}

	if strings.HasPrefix(dest, "/") {
		return SlugFromPath(dest), true
	}

	base := path.Dir(fromSlug)
	if base == "." {
		base = ""
	}
	return SlugFromPath(path.Join(base, dest)), true
}
