package molecules

import (
	"regexp"
	"strings"

	markdown "github.com/MichaelMure/go-term-markdown"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
)

var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
)

// RenderMarkdown renders content for a terminal column of the given width.
// Links are flattened to their URL so the terminal can detect them.
func RenderMarkdown(content string, width int) string {
	if width < 10 {
		width = 10
	}

	content = mdLinkRegex.ReplaceAllString(content, "$2")

	// Autolink off keeps plain URLs as plain text
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width, 0)
	doc := p.Parse([]byte(content))
	rendered := string(gomarkdown.Render(doc, r))

	// Inline code: blue background becomes red text
	rendered = inlineCodeRegex.ReplaceAllString(rendered, "\x1b[31m$1\x1b[0m")

	return strings.Trim(rendered, "\n")
}
