package domain

// Content is either plain text or an opaque pre-built value.
//
// A nil Content means "absent". Surfaces must handle both cases:
//
//	switch c := content.(type) {
//	case domain.Text:     // escape and print
//	case domain.Prebuilt: // use c.Handle as-is
//	}
type Content interface {
	isContent()
}

// Text is plain text. Surfaces escape it before display.
type Text string

func (Text) isContent() {}

// Prebuilt wraps content that was built outside the engine.
// The engine never inspects Handle.
type Prebuilt struct {
	Handle any
}

func (Prebuilt) isContent() {}

// Present reports whether c carries something to show.
func Present(c Content) bool {
	switch v := c.(type) {
	case nil:
		return false
	case Text:
		return v != ""
	case Prebuilt:
		return v.Handle != nil
	default:
		return false
	}
}
