package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitle_FirstHeading_Returned(t *testing.T) {
	body := []byte("intro text\n\n# Getting Started\n\n## Later\n")
	require.Equal(t, "Getting Started", Title(body))
}

func TestTitle_NoHeading_ReturnsEmpty(t *testing.T) {
	require.Equal(t, "", Title([]byte("just a paragraph\n")))
}

func TestExtractLinks_InlineImageAndAuto(t *testing.T) {
	body := []byte("[next](other.md)\n\n![logo](logo.png)\n\n<https://example.com>\n")

	links := ExtractLinks(body)

	var dests []string
	for _, l := range links {
		dests = append(dests, l.Destination)
	}
	require.Contains(t, dests, "other.md")
	require.Contains(t, dests, "logo.png")
	require.Contains(t, dests, "https://example.com")
}

func TestExtractLinks_ReferenceStyle_ResolvedToDestination(t *testing.T) {
	body := []byte("see [the guide][g]\n\n[g]: guide.md\n")

	links := ExtractLinks(body)

	var found bool
	for _, l := range links {
		if l.Destination == "guide.md" {
			found = true
		}
	}
	require.True(t, found, "reference-style link destination should be extracted")
}

func TestExtractLinks_NoLinks_ReturnsEmptySlice(t *testing.T) {
	links := ExtractLinks([]byte("plain text only\n"))
	require.NotNil(t, links)
	require.Empty(t, links)
}
