package document

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicateSlug is returned when two source files map to the same slug.
var ErrDuplicateSlug = errors.New("duplicate document slug")

// Set is an ordered, immutable collection of Documents.
//
// Order is deterministic: ascending frontmatter weight, then slug. The order
// defines the prev/next navigation chain and the index page listing.
type Set struct {
	docs     []*Document
	bySlug   map[string]*Document
	bySource map[string]*Document
}

// NewSet builds a Set from loaded documents, sorting them deterministically.
// A duplicate slug is an error naming the offending slug.
func NewSet(docs []*Document) (*Set, error) {
	sorted := make([]*Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		wi, wj := sortWeight(sorted[i]), sortWeight(sorted[j])
		if wi != wj {
			return wi < wj
		}
		return sorted[i].Slug < sorted[j].Slug
	})

	bySlug := make(map[string]*Document, len(sorted))
	bySource := make(map[string]*Document, len(sorted))
	for _, d := range sorted {
		if _, exists := bySlug[d.Slug]; exists {
			return nil, fmt.Errorf("%w: %s (source %s)", ErrDuplicateSlug, d.Slug, d.SourcePath)
		}
		bySlug[d.Slug] = d
		bySource[d.SourcePath] = d
	}

	return &Set{docs: sorted, bySlug: bySlug, bySource: bySource}, nil
}

// sortWeight maps pages without an explicit weight after weighted ones.
func sortWeight(d *Document) int {
	if d.Meta.Weight == 0 {
		return int(^uint(0) >> 1)
	}
	return d.Meta.Weight
}

// Documents returns the ordered documents. Callers must not mutate the slice.
func (s *Set) Documents() []*Document {
	return s.docs
}

// Len returns the number of documents in the set.
func (s *Set) Len() int {
	return len(s.docs)
}

// Lookup returns the document with the given slug.
func (s *Set) Lookup(slug string) (*Document, bool) {
	d, ok := s.bySlug[slug]
	return d, ok
}

// LookupBySource returns the document loaded from the given source-relative path.
func (s *Set) LookupBySource(sourcePath string) (*Document, bool) {
	d, ok := s.bySource[sourcePath]
	return d, ok
}

// NavEdge carries the prev/next neighbors of a document in set order.
// Nil ends mark the chain boundaries; the chain is strictly linear.
type NavEdge struct {
	Prev *Document
	Next *Document
}

// Nav returns the navigation edge for the given slug.
func (s *Set) Nav(slug string) NavEdge {
	for i, d := range s.docs {
		if d.Slug != slug {
			continue
		}
		var edge NavEdge
		if i > 0 {
			edge.Prev = s.docs[i-1]
		}
		if i < len(s.docs)-1 {
			edge.Next = s.docs[i+1]
		}
		return edge
	}
	return NavEdge{}
}
