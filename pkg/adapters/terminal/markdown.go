package terminal

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/sileo/pkg/domain"
)

// NewMarkdown returns a function that renders markdown into pre-built toast
// content, wrapped to width cells. A non-positive width uses the toast body width.
func NewMarkdown(width int) (func(string) (domain.Content, error), error) {
	if width <= 0 {
		width = bodyColumns()
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return func(md string) (domain.Content, error) {
		out, err := r.Render(md)
		if err != nil {
			return nil, err
		}
		return domain.Prebuilt{Handle: strings.Trim(out, "\n")}, nil
	}, nil
}
