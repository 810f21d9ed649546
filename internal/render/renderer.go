// Package render converts loaded Documents into HTML page artifacts.
package render

import (
	"bytes"
	"html/template"

	"git.home.luguber.info/inful/docpress/internal/config"
	"git.home.luguber.info/inful/docpress/internal/document"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
	"git.home.luguber.info/inful/docpress/internal/markdown"
)

// Page is one rendered artifact.
type Page struct {
	Slug        string
	OutputFile  string // Relative output path (e.g. "guide/intro.html")
	Title       string
	HTML        []byte
	BrokenLinks []markdown.BrokenLink
}

// Renderer maps Documents to HTML pages. It holds no per-document state:
// rendering the same Document against the same Set is byte-identical.
type Renderer struct {
	site   config.SiteConfig
	layout *template.Template
	index  *template.Template
}

// New creates a Renderer for the given site settings.
func New(site config.SiteConfig) (*Renderer, error) {
	layout, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to parse layout template")
	}
	index, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryInternal, "failed to parse index template")
	}
	return &Renderer{site: site, layout: layout, index: index}, nil
}

// resolverFor builds the link resolver for a document within its set.
func resolverFor(doc *document.Document, set *document.Set) markdown.ResolveFunc {
	return func(dest string) (string, bool, bool) {
		slug, internal := document.SlugFromLink(doc.Slug, dest)
		if !internal {
			return "", false, false
		}
		if _, ok := set.Lookup(slug); !ok {
			return "", true, false
		}
		return document.RenderedPath(slug), true, true
	}
}

// layoutData is the template context for a rendered page.
type layoutData struct {
	SiteTitle string
	Title     string
	Content   template.HTML
	Prev      *navLink
	Next      *navLink
}

type navLink struct {
	Title string
	Href  string
}

// RenderDocument renders one document against its set.
//
// Broken internal links degrade to disabled anchors and are reported on the
// returned Page; they never fail the render.
func (r *Renderer) RenderDocument(doc *document.Document, set *document.Set) (*Page, error) {
	body, broken, err := markdown.Convert(doc.Body, resolverFor(doc, set))
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to convert markdown").
			WithContext("slug", doc.Slug)
	}

	data := layoutData{
		SiteTitle: r.site.Title,
		Title:     doc.Title,
		Content:   template.HTML(body), // #nosec G203 -- body is goldmark output, inline text already escaped
	}
	edge := set.Nav(doc.Slug)
	if edge.Prev != nil {
		data.Prev = &navLink{Title: edge.Prev.Title, Href: document.RenderedPath(edge.Prev.Slug)}
	}
	if edge.Next != nil {
		data.Next = &navLink{Title: edge.Next.Title, Href: document.RenderedPath(edge.Next.Slug)}
	}

	var buf bytes.Buffer
	if err := r.layout.Execute(&buf, data); err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRender, "failed to execute layout").
			WithContext("slug", doc.Slug)
	}

	return &Page{
		Slug:        doc.Slug,
		OutputFile:  document.OutputFile(doc.Slug),
		Title:       doc.Title,
		HTML:        buf.Bytes(),
		BrokenLinks: broken,
	}, nil
}
