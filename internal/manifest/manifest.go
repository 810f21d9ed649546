// Package manifest records what a build produced, with a deterministic hash
// over the document set for change detection between builds.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"git.home.luguber.info/inful/docpress/internal/document"
)

// FileName is the manifest artifact written next to the rendered pages.
const FileName = "docpress-manifest.json"

// Manifest describes one build of the document set.
type Manifest struct {
	BuildID     string      `json:"build_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	SetHash     string      `json:"set_hash"`
	Pages       []PageEntry `json:"pages"`
}

// PageEntry is one document in the manifest.
type PageEntry struct {
	Slug        string `json:"slug"`
	Source      string `json:"source"`
	Output      string `json:"output"`
	ContentHash string `json:"content_hash"`
}

// FromSet builds a manifest for the given document set.
func FromSet(buildID string, set *document.Set, generatedAt time.Time) *Manifest {
	m := &Manifest{
		BuildID:     buildID,
		GeneratedAt: generatedAt.UTC(),
	}
	for _, doc := range set.Documents() {
		m.Pages = append(m.Pages, PageEntry{
			Slug:        doc.Slug,
			Source:      doc.SourcePath,
			Output:      document.OutputFile(doc.Slug),
			ContentHash: doc.ContentHash,
		})
	}
	m.SetHash = ComputeSetHash(set)
	return m
}

// ComputeSetHash computes a deterministic hash for a document set based on
// slugs, source paths, and content hashes. Two sets with the same hash render
// identically.
func ComputeSetHash(set *document.Set) string {
	docs := set.Documents()
	if len(docs) == 0 {
		h := sha256.Sum256([]byte("empty-document-set"))
		return hex.EncodeToString(h[:])
	}

	type entry struct{ slug, source, hash string }
	entries := make([]entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, entry{slug: d.Slug, source: d.SourcePath, hash: d.ContentHash})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].slug < entries[j].slug })

	h := sha256.New()
	for _, e := range entries {
		fmt.Fprintf(h, "%s|%s|%s\n", e.slug, e.source, e.hash)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ToJSON serializes the manifest to indented JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Write persists the manifest into the output directory.
func (m *Manifest) Write(outputDir string) error {
	data, err := m.ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, FileName), data, 0o644)
}

// PageCount returns the number of pages recorded in the manifest.
func (m *Manifest) PageCount() int {
	return len(m.Pages)
}
