package render

import (
	"bytes"

	"git.home.luguber.info/inful/docpress/internal/document"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
)

// indexData is the template context for the table-of-contents artifact.
type indexData struct {
	SiteTitle   string
	Description string
	Entries     []indexEntry
}

type indexEntry struct {
	Title string
	Href  string
}

// RenderIndex renders the index.html artifact listing every page in set order.
func (r *Renderer) RenderIndex(set *document.Set) (*Page, error) {
	data := indexData{
		SiteTitle:   r.site.Title,
		Description: r.site.Description,
	}
	for _, doc := range set.Documents() {
		data.Entries = append(data.Entries, indexEntry{
			Title: doc.Title,
			Href:  document.RenderedPath(doc.Slug),
		})
	}

	var buf bytes.Buffer
	if err := r.index.Execute(&buf, data); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to execute index template")
	}

	return &Page{
		Slug:       "index",
		OutputFile: "index.html",
		Title:      r.site.Title,
		HTML:       buf.Bytes(),
	}, nil
}
