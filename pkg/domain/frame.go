package domain

// Part names a measurable region of a toast host.
type Part string

const (
	PartHeader  Part = "header"
	PartContent Part = "content"
)

// Header is one header layer: badge plus title.
type Header struct {
	// Key is the identity of the layer; a new key means a new layer.
	Key    string
	State  State
	Title  string
	Icon   Content
	Styles Styles
}

// HeaderKey derives the identity of a header from its state and title.
func HeaderKey(s State, title string) string {
	return string(s) + "-" + title
}

// Body is the expandable part of a toast.
type Body struct {
	Description Content
	Button      *Button
	Styles      Styles
}

// Filter is the definition of a shared blur filter.
type Filter struct {
	ID   string
	Blur float64
}

// Frame is the full set of visual variables of one toast.
// Surfaces render it verbatim; the lifecycle machine recomputes it on every change.
type Frame struct {
	ID    string
	State State
	Align Align
	Edge  Edge

	Ready    bool
	Expanded bool
	Exiting  bool

	// Height is the current outer height: expanded height when open, else Height.
	Height float64
	// PillWidth and PillX place the pill along the toast width.
	PillWidth float64
	PillX     float64
	// PillHeight includes room for the blur; ScaleY squashes it back when closed.
	PillHeight float64
	ScaleY     float64
	// SVGHeight and BodyHeight size the drawing canvas and the body shape.
	SVGHeight  float64
	BodyHeight float64

	BodyOpacity    float64
	ContentOpacity float64
	HeaderOffsetY  float64
	HeaderScale    float64

	Fill      string
	DarkFill  string
	Roundness float64
	FilterID  string

	// SwipeOffset is the clamped vertical drag offset, zero when idle.
	SwipeOffset float64

	Header     Header
	PrevHeader *Header
	// Body is nil when the toast has nothing to expand.
	Body *Body
}
