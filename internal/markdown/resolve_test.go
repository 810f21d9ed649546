package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// passthroughResolver treats every destination as external.
func passthroughResolver(string) (string, bool, bool) {
	return "", false, false
}

func TestConvert_InternalLink_RewrittenToRenderedPath(t *testing.T) {
	resolve := func(dest string) (string, bool, bool) {
		if dest == "other.md" {
			return "/other.html", true, true
		}
		return "", false, false
	}

	out, broken, err := Convert([]byte("[next](other.md)\n"), resolve)
	require.NoError(t, err)
	require.Empty(t, broken)
	require.Contains(t, string(out), `<a href="/other.html">next</a>`)
}

func TestConvert_UnresolvedInternalLink_RendersDisabledAndReports(t *testing.T) {
	resolve := func(dest string) (string, bool, bool) {
		return "", true, false // internal, target missing
	}

	out, broken, err := Convert([]byte("[x](missing.md)\n"), resolve)
	require.NoError(t, err)
	require.Len(t, broken, 1)
	require.Equal(t, "missing.md", broken[0].Destination)
	require.Contains(t, string(out), `<a class="broken-link" aria-disabled="true">x</a>`)
	require.NotContains(t, string(out), `href="missing.md"`)
}

func TestConvert_ExternalLink_PassesThrough(t *testing.T) {
	out, broken, err := Convert([]byte("[site](https://example.com/page)\n"), passthroughResolver)
	require.NoError(t, err)
	require.Empty(t, broken)
	require.Contains(t, string(out), `<a href="https://example.com/page">site</a>`)
}

func TestConvert_FencedCodeBlock_NotReinterpreted(t *testing.T) {
	body := []byte("```\n*not emphasis* and [not](a-link.md)\n```\n")

	out, broken, err := Convert(body, passthroughResolver)
	require.NoError(t, err)
	require.Empty(t, broken)

	html := string(out)
	// Markup characters inside the fence stay literal code text.
	require.Contains(t, html, "*not emphasis* and [not](a-link.md)")
	require.NotContains(t, html, "<em>")
	require.NotContains(t, html, `<a href="a-link.md"`)
}

func TestConvert_CodeBlockAngleBrackets_EscapedPerHTMLConvention(t *testing.T) {
	body := []byte("```\n<b>tag</b>\n```\n")

	out, _, err := Convert(body, passthroughResolver)
	require.NoError(t, err)
	require.Contains(t, string(out), "&lt;b&gt;tag&lt;/b&gt;")
	require.NotContains(t, string(out), "<b>tag</b>")
}

func TestConvert_InlineTextEscaped(t *testing.T) {
	out, _, err := Convert([]byte("a < b & c\n"), passthroughResolver)
	require.NoError(t, err)
	require.Contains(t, string(out), "a &lt; b &amp; c")
}

func TestConvert_SameInput_ByteIdentical(t *testing.T) {
	body := []byte("# Title\n\n[next](other.md)\n\n```\ncode\n```\n")
	resolve := func(dest string) (string, bool, bool) {
		if strings.HasSuffix(dest, ".md") {
			return "/other.html", true, true
		}
		return "", false, false
	}

	first, _, err := Convert(body, resolve)
	require.NoError(t, err)
	second, _, err := Convert(body, resolve)
	require.NoError(t, err)
	require.Equal(t, first, second)
}
