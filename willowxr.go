package willowxr

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is the zero emissive contribution.
var ColorBlack = Color{0, 0, 0, 1}

// Add returns the component-wise sum of c and o, clamped to [0, 1]. Alpha is
// taken from c.
func (c Color) Add(o Color) Color {
	return Color{clamp01(c.R + o.R), clamp01(c.G + o.G), clamp01(c.B + o.B), c.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec3 is the 3D vector type used for positions, directions and scales.
type Vec3 = mgl64.Vec3

// Quat is the rotation type used for node orientation.
type Quat = mgl64.Quat

// Forward is the local-space pointing direction of a controller (-Z).
var Forward = Vec3{0, 0, -1}

// ControllerID identifies one physical input device (a hand).
type ControllerID int

// HighlightChannel selects which visual highlight a change applies to.
type HighlightChannel uint8

const (
	HighlightHover HighlightChannel = iota // nearest intersection this frame
	HighlightGrab                          // currently held by a controller

	numHighlightChannels
)

// String returns "hover" or "grab".
func (ch HighlightChannel) String() string {
	switch ch {
	case HighlightHover:
		return "hover"
	case HighlightGrab:
		return "grab"
	default:
		return "unknown"
	}
}

// Ownership is the hold state of a candidate object. The zero value is Free.
type Ownership struct {
	Held bool
	By   ControllerID
}

// Free is the ownership of an object no controller holds.
var Free = Ownership{}

// HeldBy returns the ownership of an object held by id.
func HeldBy(id ControllerID) Ownership {
	return Ownership{Held: true, By: id}
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventGrab       EventType = iota // a controller attached an object
	EventRelease                     // a controller detached its object
	EventHoverEnter                  // an object became a controller's hover target
	EventHoverLeave                  // an object stopped being a controller's hover target
)

// String returns a short name for the event type.
func (e EventType) String() string {
	switch e {
	case EventGrab:
		return "grab"
	case EventRelease:
		return "release"
	case EventHoverEnter:
		return "hoverEnter"
	case EventHoverLeave:
		return "hoverLeave"
	default:
		return "unknown"
	}
}

var (
	// ErrNilObject is returned when a nil node is registered.
	ErrNilObject = errors.New("willowxr: nil object")
	// ErrDisposedObject is returned when a disposed node is registered.
	ErrDisposedObject = errors.New("willowxr: disposed object")
	// ErrDuplicateCandidate is returned when a node with an already registered
	// identity is registered again. The existing entry is kept.
	ErrDuplicateCandidate = errors.New("willowxr: duplicate candidate")
	// ErrUnknownController is returned when an operation names a controller
	// that was never added to the context.
	ErrUnknownController = errors.New("willowxr: unknown controller")
)
