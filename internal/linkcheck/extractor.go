// Package linkcheck verifies links in rendered HTML after a build.
package linkcheck

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	derrors "git.home.luguber.info/inful/docpress/internal/errors"
)

// Link represents an extracted link from HTML content.
type Link struct {
	URL        string // The URL or path
	Text       string // Link text
	Tag        string // HTML tag (a, img)
	IsInternal bool   // True if link is internal to the site
}

// ExtractLinks extracts anchor and image links from an HTML file.
func ExtractLinks(htmlPath string, baseURL string) ([]*Link, error) {
	file, err := os.Open(filepath.Clean(htmlPath))
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryFileSystem, "failed to open HTML file").
			WithContext("html_path", htmlPath)
	}
	defer func() {
		_ = file.Close() // Read-only; close errors carry no signal.
	}()

	return ExtractLinksFromReader(file, baseURL)
}

// ExtractLinksFromReader extracts anchor and image links from an HTML reader.
func ExtractLinksFromReader(r io.Reader, baseURL string) ([]*Link, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryValidation, "failed to parse HTML")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryValidation, "invalid base URL").
			WithContext("base_url", baseURL)
	}

	var links []*Link
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if href := getAttr(n, "href"); href != "" {
					links = append(links, &Link{
						URL:        href,
						Text:       extractText(n),
						Tag:        "a",
						IsInternal: isInternalLink(href, base),
					})
				}
			case "img":
				if src := getAttr(n, "src"); src != "" {
					links = append(links, &Link{
						URL:        src,
						Tag:        "img",
						IsInternal: isInternalLink(src, base),
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)
	return links, nil
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

// isInternalLink classifies a destination relative to the site base.
func isInternalLink(dest string, base *url.URL) bool {
	if strings.HasPrefix(dest, "#") {
		return true
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	if u.Scheme == "" && u.Host == "" {
		return true
	}
	return base.Host != "" && u.Host == base.Host
}
