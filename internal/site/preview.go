package site

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// PreviewMarkdown renders markdown for terminal display. Width <= 0 falls
// back to a standard 100-column wrap.
func PreviewMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
