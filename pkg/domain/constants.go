package domain

import "time"

// Layout constants, in CSS pixels.
const (
	Height           = 40.0
	Width            = 350.0
	DefaultRoundness = 18.0
	BlurRatio        = 0.5
	PillPadding      = 10.0
	MinExpandRatio   = 2.25
)

// Timing constants.
const (
	AnimationDuration = 600 * time.Millisecond
	DefaultDuration   = 6000 * time.Millisecond
	ExitDuration      = DefaultDuration / 10
	AutoExpandDelay   = DefaultDuration / 40
	AutoCollapseDelay = DefaultDuration - 2000*time.Millisecond
	SwapCollapse      = 200 * time.Millisecond
	HeaderExit        = AnimationDuration * 7 / 10
)

// Swipe thresholds, in pixels of vertical pointer travel.
const (
	SwipeDismiss = 30.0
	SwipeMax     = 20.0
)

const (
	// DefaultID is used when a toast is created without an explicit id.
	DefaultID = "sileo-default"

	DefaultFill     = "#FFFFFF"
	DefaultDarkFill = "#1C1C1E"

	// LiveRegion is the only accessibility hint a viewport carries.
	LiveRegion = "polite"
)
