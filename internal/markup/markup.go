// Package markup renders the lightweight markup allowed in todo
// descriptions to HTML for the view layer.
package markup

import (
	"strings"

	"github.com/russross/blackfriday/v2"
)

// Render converts a description to HTML. Raw HTML in the source is
// skipped and link targets are restricted to safe schemes, so the
// output can be injected into the page as-is.
func Render(description string) string {
	if description == "" {
		return ""
	}
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML | blackfriday.Safelink,
	})
	out := blackfriday.Run([]byte(description), blackfriday.WithRenderer(renderer))
	return strings.TrimSpace(string(out))
}
