package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ResolveFunc maps a raw link destination to a rendered href.
//
// internal reports whether the destination refers to a page inside the
// document set (as opposed to an external URL or anchor, which pass through
// untouched). resolved reports whether an internal destination has a known
// target; unresolved internal links render disabled.
type ResolveFunc func(dest string) (href string, internal bool, resolved bool)

// BrokenLink records an internal link whose target does not exist.
type BrokenLink struct {
	Destination string
}

var (
	resolverKey = parser.NewContextKey()
	brokenKey   = parser.NewContextKey()
)

// brokenAttr marks a Link node as unresolved for the custom renderer.
var brokenAttr = []byte("data-docpress-broken")

// Convert renders a Markdown body to HTML, rewriting internal links through
// resolve and collecting broken links instead of failing.
//
// Conversion is pure: the same body and the same resolver always produce the
// same bytes and the same broken link list.
func Convert(body []byte, resolve ResolveFunc) ([]byte, []BrokenLink, error) {
	broken := make([]BrokenLink, 0)

	md := goldmark.New(goldmark.WithExtensions(&resolveExtension{}))
	pc := parser.NewContext()
	pc.Set(resolverKey, resolve)
	pc.Set(brokenKey, &broken)

	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(pc))

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, body, root); err != nil {
		return nil, nil, err
	}
	return buf.Bytes(), broken, nil
}

// resolveExtension wires the link transformer and the broken-link renderer.
type resolveExtension struct{}

func (e *resolveExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&linkTransformer{}, 900),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(newLinkRenderer(), 100),
	))
}

// linkTransformer rewrites internal link destinations against the document
// set and marks unresolved internal links.
type linkTransformer struct{}

func (t *linkTransformer) Transform(doc *gmast.Document, _ text.Reader, pc parser.Context) {
	resolve, _ := pc.Get(resolverKey).(ResolveFunc)
	if resolve == nil {
		return
	}
	sink, _ := pc.Get(brokenKey).(*[]BrokenLink)

	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		link, ok := n.(*gmast.Link)
		if !ok {
			return gmast.WalkContinue, nil
		}

		dest := string(link.Destination)
		href, internal, resolved := resolve(dest)
		if !internal {
			return gmast.WalkContinue, nil
		}
		if resolved {
			link.Destination = []byte(href)
			return gmast.WalkContinue, nil
		}

		link.SetAttributeString(string(brokenAttr), true)
		if sink != nil {
			*sink = append(*sink, BrokenLink{Destination: dest})
		}
		return gmast.WalkContinue, nil
	})
}

// linkRenderer replaces Goldmark's default Link renderer so that links marked
// broken render as disabled anchors instead of pointing nowhere.
type linkRenderer struct {
	html.Config
}

func newLinkRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &linkRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *linkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(gmast.KindLink, r.renderLink)
}

func (r *linkRenderer) renderLink(w util.BufWriter, _ []byte, node gmast.Node, entering bool) (gmast.WalkStatus, error) {
	n := node.(*gmast.Link)

	if _, isBroken := n.AttributeString(string(brokenAttr)); isBroken {
		if entering {
			_, _ = w.WriteString(`<a class="broken-link" aria-disabled="true">`)
		} else {
			_, _ = w.WriteString("</a>")
		}
		return gmast.WalkContinue, nil
	}

	// Default Goldmark anchor rendering for resolved and external links.
	if entering {
		_, _ = w.WriteString("<a href=\"")
		if r.Unsafe || !html.IsDangerousURL(n.Destination) {
			_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
		}
		_ = w.WriteByte('"')
		if n.Title != nil {
			_, _ = w.WriteString(` title="`)
			r.Writer.Write(w, n.Title)
			_ = w.WriteByte('"')
		}
		_ = w.WriteByte('>')
	} else {
		_, _ = w.WriteString("</a>")
	}
	return gmast.WalkContinue, nil
}
