package trilium

import (
	"html"
	"strings"

	"noteagent/internal/source"
)

var _ source.Loader = (*Client)(nil)

// blockTags end a line of text when stripped, so "<p>a</p><p>b</p>" does not
// collapse into "ab".
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "table": true, "ul": true, "ol": true,
}

// htmlToText strips markup from a Trilium note body. Trilium stores rich
// notes as HTML fragments; plain-text notes pass through unchanged.
func htmlToText(raw string) string {
	if !strings.Contains(raw, "<") {
		return html.UnescapeString(raw)
	}

	var b strings.Builder
	var tag strings.Builder
	inTag := false

	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
			tag.Reset()
		case r == '>' && inTag:
			inTag = false
			if isBlockTag(tag.String()) {
				b.WriteByte('\n')
			}
		case inTag:
			tag.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	text := html.UnescapeString(b.String())
	// collapse runs of blank lines left behind by nested block markup
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}

func isBlockTag(tag string) bool {
	tag = strings.ToLower(strings.TrimPrefix(tag, "/"))
	if i := strings.IndexAny(tag, " \t\n/"); i >= 0 {
		tag = tag[:i]
	}
	return blockTags[tag]
}
