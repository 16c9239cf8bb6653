package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/aretw0/sileo/pkg/domain"
)

var stateColors = map[domain.State]string{
	domain.StateSuccess: "#22c55e",
	domain.StateLoading: "#a1a1aa",
	domain.StateError:   "#ef4444",
	domain.StateWarning: "#f59e0b",
	domain.StateInfo:    "#3b82f6",
	domain.StateAction:  "#8b5cf6",
}

var stateBadges = map[domain.State]string{
	domain.StateSuccess: "✓",
	domain.StateLoading: "◌",
	domain.StateError:   "✕",
	domain.StateWarning: "!",
	domain.StateInfo:    "i",
	domain.StateAction:  "→",
}

// drawer renders frames with the surface settings. Callers hold the surface lock.
type drawer struct {
	r    *lipgloss.Renderer
	dark bool
}

func (s *Surface) drawer() drawer {
	return drawer{r: s.renderer, dark: s.dark}
}

// measure returns the header width and content height of f, in pixels.
func (d drawer) measure(f domain.Frame) (header, content float64) {
	header = float64(ansi.StringWidth(d.headerText(f.Header))+2) * CellWidth
	if f.Body != nil {
		content = float64(lipgloss.Height(d.body(f))) * CellHeight
	}
	return header, content
}

// box renders the pill and, when open, the body below it.
func (d drawer) box(f domain.Frame) string {
	fill := f.Fill
	fg := "#111111"
	if d.dark {
		fill = f.DarkFill
		fg = "#f4f4f5"
	}
	accent := lipgloss.Color(stateColors[f.Header.State.OrDefault()])

	pillCols := int(math.Max(3, math.Floor(f.PillWidth/CellWidth)))
	pill := d.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Background(lipgloss.Color(fill)).
		Foreground(lipgloss.Color(fg)).
		Width(pillCols - 2).
		MaxHeight(3)
	if f.Exiting {
		pill = pill.Faint(true)
	}
	out := pill.Render(d.headerText(f.Header))
	if !f.Expanded || f.Body == nil {
		return out
	}

	body := d.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Background(lipgloss.Color(fill)).
		Foreground(lipgloss.Color(fg)).
		Render(d.body(f))

	pos := lipgloss.Left
	switch f.Align {
	case domain.AlignRight:
		pos = lipgloss.Right
	case domain.AlignCenter:
		pos = lipgloss.Center
	}
	if f.Edge == domain.EdgeTop {
		return lipgloss.JoinVertical(pos, body, out)
	}
	return lipgloss.JoinVertical(pos, out, body)
}

func (d drawer) headerText(h domain.Header) string {
	badge := stateBadges[h.State.OrDefault()]
	if domain.Present(h.Icon) {
		badge = contentString(h.Icon)
	}
	return badge + " " + sanitize(h.Title)
}

// body renders the description and button, wrapped to the toast width.
func (d drawer) body(f domain.Frame) string {
	inner := bodyColumns()
	var parts []string
	if domain.Present(f.Body.Description) {
		parts = append(parts, d.r.NewStyle().Width(inner).Render(contentString(f.Body.Description)))
	}
	if b := f.Body.Button; b != nil {
		parts = append(parts, d.r.NewStyle().Bold(true).Render("[ "+sanitize(b.Title)+" ]"))
	}
	return strings.Join(parts, "\n")
}

// bodyColumns is the wrap width of the toast body, inside its border.
func bodyColumns() int {
	return int(math.Floor(domain.Width/CellWidth)) - 2
}

// contentString escapes plain text and passes pre-built content through.
func contentString(c domain.Content) string {
	switch v := c.(type) {
	case domain.Text:
		return sanitize(string(v))
	case domain.Prebuilt:
		switch h := v.Handle.(type) {
		case string:
			return h
		case fmt.Stringer:
			return h.String()
		default:
			return fmt.Sprint(h)
		}
	default:
		return ""
	}
}

// sanitize strips escape sequences so plain text cannot drive the terminal.
func sanitize(s string) string {
	return ansi.Strip(s)
}

func blank(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// placeOverlay writes fg on top of bg at column x and row y.
func placeOverlay(x, y int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	if x < 0 {
		x = 0
	}

	for i, fgLine := range fgLines {
		idx := y + i
		if idx < 0 || idx >= len(bgLines) {
			continue
		}
		bgLine := bgLines[idx]
		fgW := ansi.StringWidth(fgLine)
		bgW := ansi.StringWidth(bgLine)

		if x >= bgW {
			bgLines[idx] = bgLine + strings.Repeat(" ", x-bgW) + fgLine
			continue
		}
		left := ansi.Cut(bgLine, 0, x)
		var right string
		if x+fgW < bgW {
			right = ansi.Cut(bgLine, x+fgW, bgW)
		}
		bgLines[idx] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}
