package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// Notes renders candidate notes as markdown.
// Falls back to plain wrapped text if markdown rendering fails.
func Notes(notes string, width int) string {
	if strings.TrimSpace(notes) == "" {
		return EmptyStyle.Render("No notes")
	}

	renderer, err := getRenderer(width)
	if err == nil {
		if out, err := renderer.Render(notes); err == nil {
			return strings.TrimSpace(out)
		}
	}
	return wordwrap.String(notes, width)
}
