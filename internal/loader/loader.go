// Package loader discovers and loads Markdown documents from a source tree.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"git.home.luguber.info/inful/docpress/internal/document"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
	"git.home.luguber.info/inful/docpress/internal/frontmatter"
	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/markdown"
)

// ErrMalformedDocument is returned when a source file cannot be decoded as a
// text document (invalid UTF-8 or unterminated frontmatter). It is fatal for
// that document only.
var ErrMalformedDocument = errors.New("malformed document")

// Failure records one document that could not be loaded. The batch continues
// past failures.
type Failure struct {
	Path string
	Err  error
}

// Result is the outcome of loading a source tree.
type Result struct {
	Set      *document.Set
	Failures []Failure
	Assets   []string // Non-markdown files found alongside the docs
	Skipped  int      // Draft pages excluded from the set
}

// Loader walks a docs root and produces Documents.
type Loader struct {
	root string
}

// New creates a Loader for the given docs root directory.
func New(root string) *Loader {
	return &Loader{root: root}
}

// Load walks the root and loads every Markdown document found.
//
// Per-document problems are isolated into Result.Failures; Load only returns
// an error when the root itself is unusable.
func (l *Loader) Load() (*Result, error) {
	info, err := os.Stat(l.root)
	if err != nil || !info.IsDir() {
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal,
			fmt.Sprintf("docs root not found or not a directory: %s", l.root))
	}

	// A .docignore file at the root excludes the whole tree.
	if _, err := os.Stat(filepath.Join(l.root, ".docignore")); err == nil {
		slog.Info("Skipping docs root due to .docignore file", logfields.Path(l.root))
		set, _ := document.NewSet(nil)
		return &Result{Set: set}, nil
	}

	result := &Result{}
	var docs []*document.Document
	seen := make(map[string]string) // slug -> source path

	walkErr := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != l.root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !isMarkdown(d.Name()) {
			result.Assets = append(result.Assets, rel)
			return nil
		}

		doc, err := l.loadFile(path, rel)
		if err != nil {
			slog.Warn("Document failed to load", logfields.Path(rel), logfields.Error(err))
			result.Failures = append(result.Failures, Failure{Path: rel, Err: err})
			return nil
		}
		if doc.Meta.Draft {
			slog.Debug("Skipping draft", logfields.Slug(doc.Slug))
			result.Skipped++
			return nil
		}

		if prior, dup := seen[doc.Slug]; dup {
			err := fmt.Errorf("%w: %s collides with %s", document.ErrDuplicateSlug, rel, prior)
			slog.Warn("Document failed to load", logfields.Path(rel), logfields.Error(err))
			result.Failures = append(result.Failures, Failure{Path: rel, Err: err})
			return nil
		}
		seen[doc.Slug] = rel
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, derrors.WrapError(walkErr, derrors.CategoryFileSystem, "failed to walk docs root")
	}

	set, err := document.NewSet(docs)
	if err != nil {
		// Duplicates are filtered above; reaching this is a programming error.
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to assemble document set")
	}

	slog.Info("Documents loaded",
		logfields.Count(set.Len()),
		logfields.Failures(len(result.Failures)))

	result.Set = set
	return result, nil
}

// loadFile reads and parses a single Markdown source file.
func (l *Loader) loadFile(path, rel string) (*document.Document, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from walking the configured root
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to read document").
			WithContext("path", rel)
	}

	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: %s: invalid UTF-8", ErrMalformedDocument, rel)
	}

	fmRaw, body, _, err := frontmatter.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, rel, err)
	}

	meta, err := frontmatter.Parse(fmRaw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, rel, err)
	}

	slug := document.SlugFromPath(rel)
	title := meta.Title
	if title == "" {
		title = markdown.Title(body)
	}
	if title == "" {
		title = slug
	}

	return &document.Document{
		Slug:        slug,
		SourcePath:  rel,
		Raw:         raw,
		Body:        body,
		Meta:        meta,
		Title:       title,
		ContentHash: document.HashContent(raw),
	}, nil
}

func isMarkdown(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
