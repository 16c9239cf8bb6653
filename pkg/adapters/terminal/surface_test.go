package terminal_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sileo/pkg/adapters/terminal"
	"github.com/aretw0/sileo/pkg/domain"
)

func newSurface(opts ...terminal.Option) (*terminal.Surface, *bytes.Buffer) {
	var buf bytes.Buffer
	opts = append([]terminal.Option{terminal.WithColorProfile(termenv.Ascii)}, opts...)
	return terminal.New(&buf, opts...), &buf
}

func frame(title string) domain.Frame {
	return domain.Frame{
		ID:        "a",
		State:     domain.StateSuccess,
		Align:     domain.AlignRight,
		Edge:      domain.EdgeBottom,
		PillWidth: 120,
		Fill:      domain.DefaultFill,
		DarkFill:  domain.DefaultDarkFill,
		Header:    domain.Header{Key: "success-" + title, State: domain.StateSuccess, Title: title},
	}
}

func TestHost_Measure(t *testing.T) {
	s, _ := newSurface()
	h := s.NewHost("a")

	_, ok := h.Measure(domain.PartHeader)
	assert.False(t, ok, "nothing rendered yet")

	h.Render(frame("Hello"))

	w, ok := h.Measure(domain.PartHeader)
	require.True(t, ok)
	assert.Equal(t, float64(len("x Hello")+2)*terminal.CellWidth, w)

	_, ok = h.Measure(domain.PartContent)
	assert.False(t, ok, "no body")
}

func TestHost_ObserveHeaderChange(t *testing.T) {
	s, _ := newSurface()
	h := s.NewHost("a")
	h.Render(frame("Hi"))

	calls := 0
	cancel := h.Observe(domain.PartHeader, func() { calls++ })
	h.Render(frame("Hi"))
	assert.Zero(t, calls, "same size does not notify")

	h.Render(frame("Hello there"))
	assert.Equal(t, 1, calls)

	cancel()
	h.Render(frame("Bye"))
	assert.Equal(t, 1, calls)
}

func TestSurface_View(t *testing.T) {
	s, _ := newSurface(terminal.WithSize(60, 10))
	vp := s.Viewport(domain.ViewportSpec{Position: domain.TopRight})
	h := s.NewHost("a")
	vp.Append(h)
	h.Render(frame("Hello"))

	lines := strings.Split(s.View(), "\n")
	require.Len(t, lines, 10)
	assert.Contains(t, lines[1], "Hello")
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[1], " "), "│"), "box is flush right")
	assert.Equal(t, 60, ansi.StringWidth(lines[1]))

	h.Remove()
	assert.NotContains(t, s.View(), "Hello")
}

func TestSurface_BottomViewportStacksUp(t *testing.T) {
	s, _ := newSurface(terminal.WithSize(60, 10))
	vp := s.Viewport(domain.ViewportSpec{Position: domain.BottomLeft})
	h := s.NewHost("a")
	vp.Append(h)
	f := frame("Low")
	f.Align = domain.AlignLeft
	h.Render(f)

	lines := strings.Split(s.View(), "\n")
	assert.Contains(t, lines[8], "Low")
	assert.True(t, strings.HasPrefix(lines[8], "│"))
}

func TestSurface_ViewportOffset(t *testing.T) {
	s, _ := newSurface(terminal.WithSize(60, 10))
	vp := s.Viewport(domain.ViewportSpec{
		Position: domain.TopLeft,
		Offset:   map[domain.Side]string{domain.SideTop: "32px", domain.SideLeft: "16px"},
	})
	h := s.NewHost("a")
	vp.Append(h)
	f := frame("Off")
	f.Align = domain.AlignLeft
	h.Render(f)

	lines := strings.Split(s.View(), "\n")
	assert.Contains(t, lines[3], "Off")
	assert.True(t, strings.HasPrefix(lines[3], "  │"))
}

func TestSurface_ExpandedBody(t *testing.T) {
	s, _ := newSurface()
	vp := s.Viewport(domain.ViewportSpec{Position: domain.TopRight})
	h := s.NewHost("a")
	vp.Append(h)

	f := frame("Saved")
	f.Body = &domain.Body{
		Description: domain.Text("All changes stored"),
		Button:      &domain.Button{Title: "Undo"},
	}
	h.Render(f)
	assert.NotContains(t, s.View(), "All changes stored", "collapsed toasts hide the body")

	height, ok := h.Measure(domain.PartContent)
	require.True(t, ok)
	assert.Equal(t, 2*terminal.CellHeight, height)

	f.Expanded = true
	h.Render(f)
	view := s.View()
	assert.Contains(t, view, "All changes stored")
	assert.Contains(t, view, "[ Undo ]")
}

func TestSurface_ExpandedBodyWraps(t *testing.T) {
	s, _ := newSurface(terminal.WithSize(120, 30))
	vp := s.Viewport(domain.ViewportSpec{Position: domain.TopLeft})
	h := s.NewHost("a")
	vp.Append(h)

	desc := strings.TrimSpace(strings.Repeat("rollout ", 12))
	f := frame("Deploy")
	f.Expanded = true
	f.Body = &domain.Body{Description: domain.Text(desc)}
	h.Render(f)

	view := ansi.Strip(s.View())
	assert.Contains(t, view, "rollout")
	assert.NotContains(t, view, desc, "long descriptions wrap to the toast width")
}

func TestSurface_EscapesText(t *testing.T) {
	s, _ := newSurface()
	vp := s.Viewport(domain.ViewportSpec{Position: domain.TopLeft})
	h := s.NewHost("a")
	vp.Append(h)

	h.Render(frame("\x1b[31mred"))

	view := s.View()
	assert.Contains(t, view, "red")
	assert.NotContains(t, view, "\x1b[31m")
}

func TestSurface_PrebuiltIcon(t *testing.T) {
	s, _ := newSurface()
	vp := s.Viewport(domain.ViewportSpec{Position: domain.TopLeft})
	h := s.NewHost("a")
	vp.Append(h)

	f := frame("Deploy")
	f.Header.Icon = domain.Prebuilt{Handle: "🚀"}
	h.Render(f)

	assert.Contains(t, s.View(), "🚀 Deploy")
}

func TestSurface_RemovedViewport(t *testing.T) {
	s, _ := newSurface()
	vp := s.Viewport(domain.ViewportSpec{Position: domain.TopLeft})
	h := s.NewHost("a")
	vp.Append(h)
	h.Render(frame("Gone"))

	vp.Remove()

	assert.NotContains(t, s.View(), "Gone")
}

func TestSurface_Flush(t *testing.T) {
	s, buf := newSurface(terminal.WithSize(40, 5))

	require.NoError(t, s.Flush())

	assert.Contains(t, buf.String(), strings.Repeat(" ", 40))
}

func TestNewMarkdown(t *testing.T) {
	render, err := terminal.NewMarkdown(0)
	require.NoError(t, err)

	c, err := render("Deploy **finished**")
	require.NoError(t, err)

	p, ok := c.(domain.Prebuilt)
	require.True(t, ok)
	assert.Contains(t, ansi.Strip(p.Handle.(string)), "finished")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	terminal.PrintBanner(&buf)
	assert.NotEmpty(t, buf.String())
}
