package terminal

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the demo banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text, color string
	}{
		{"  ___ _ _", "#22c55e"},
		{" / __(_) |___ ___", "#3b82f6"},
		{" \\__ \\ | / -_) _ \\", "#8b5cf6"},
		{" |___/_|_\\___\\___/", "#f59e0b"},
	}
	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
