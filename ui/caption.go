package ui

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderMarkdown converts a short markdown snippet to HTML. Raw HTML in the
// source is dropped, so the result is safe to inline in a template.
func RenderMarkdown(source string) template.HTML {
	// parsers keep state between calls, so each render gets its own
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(source))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.SkipHTML,
	})
	return template.HTML(markdown.Render(doc, renderer))
}
