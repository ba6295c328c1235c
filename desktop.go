package willowxr

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DesktopInput emulates hand controllers with mouse and keyboard for testing
// without a headset, using a top-down view of the scene:
//
//   - the mouse aims Mouse: the controller stands at its origin and points at
//     the cursor's ground position raised to AimHeight; left button selects.
//   - Keys aims KeyController: arrow keys yaw it, Space selects.
//
// Poll delivers select events straight to the context, so call it from the
// game's Update before InteractionContext.Update.
type DesktopInput struct {
	View TopDownView

	Mouse       ControllerID
	MouseOrigin Vec3

	KeyController ControllerID
	KeyOrigin     Vec3
	KeyYaw        float64 // radians, 0 = looking down -Z
	YawSpeed      float64 // radians per second

	AimHeight float64

	keysEnabled bool
}

// NewDesktopInput returns an emulator driving controllers 0 (mouse) and 1
// (keyboard).
func NewDesktopInput(view TopDownView) *DesktopInput {
	return &DesktopInput{
		View:          view,
		Mouse:         0,
		MouseOrigin:   Vec3{-0.3, 1.1, 1.5},
		KeyController: 1,
		KeyOrigin:     Vec3{0.3, 1.1, 1.5},
		YawSpeed:      math.Pi / 2,
		AimHeight:     1.1,
		keysEnabled:   true,
	}
}

// DisableKeys stops the keyboard controller from being driven.
func (d *DesktopInput) DisableKeys() {
	d.keysEnabled = false
}

// Poll reads ebiten input state and applies poses and select events.
func (d *DesktopInput) Poll(ic *InteractionContext, dt float64) {
	if c := ic.controller(d.Mouse); c != nil {
		mx, my := ebiten.CursorPosition()
		wx, wz := d.View.ScreenToWorld(float64(mx), float64(my))
		target := Vec3{wx, d.AimHeight, wz}
		c.SetPose(PoseFromDirection(d.MouseOrigin, target.Sub(d.MouseOrigin)))

		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			ic.SelectStart(d.Mouse)
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			ic.SelectEnd(d.Mouse)
		}
	}

	if !d.keysEnabled {
		return
	}
	if c := ic.controller(d.KeyController); c != nil {
		if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
			d.KeyYaw += d.YawSpeed * dt
		}
		if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
			d.KeyYaw -= d.YawSpeed * dt
		}
		sin, cos := math.Sincos(d.KeyYaw)
		dir := Vec3{-sin, (d.AimHeight - d.KeyOrigin[1]) / 2, -cos}
		c.SetPose(PoseFromDirection(d.KeyOrigin, dir))

		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			ic.SelectStart(d.KeyController)
		}
		if inpututil.IsKeyJustReleased(ebiten.KeySpace) {
			ic.SelectEnd(d.KeyController)
		}
	}
}
