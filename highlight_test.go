package willowxr

import (
	"math"
	"testing"
)

func TestEmissiveHighlighterSubtree(t *testing.T) {
	teddy := NewNode("teddy")
	body := NewMeshNode("body", HitSphere{Radius: 0.5}, ColorWhite)
	eyes := NewMeshNode("eyes", HitSphere{Radius: 0.1}, ColorBlack)
	eyes.Material.Unlit = true
	teddy.AddChild(body)
	body.AddChild(eyes)

	h := NewEmissiveHighlighter(DefaultHoverColor, DefaultGrabColor)
	h.SetHighlight(teddy, HighlightHover, true)

	if got := body.Material.EmissiveChannel(HighlightHover); got != DefaultHoverColor {
		t.Errorf("body hover = %v, want %v", got, DefaultHoverColor)
	}
	if eyes.Material.Emissive() != (Color{}) {
		t.Errorf("unlit eyes emissive = %v, want zero", eyes.Material.Emissive())
	}

	h.SetHighlight(teddy, HighlightHover, false)
	if got := body.Material.EmissiveChannel(HighlightHover); got != (Color{}) {
		t.Errorf("body hover after off = %v, want zero", got)
	}
}

func TestEmissiveHighlighterIgnoresBadInput(t *testing.T) {
	h := NewEmissiveHighlighter(DefaultHoverColor, DefaultGrabColor)
	h.SetHighlight(nil, HighlightHover, true)
	n := NewNode("group")
	h.SetHighlight(n, HighlightHover, true)
	h.SetHighlight(n, numHighlightChannels, true)
}

func TestMaterialChannelsCombine(t *testing.T) {
	m := NewMaterial(Color{0.2, 0.2, 0.2, 1})
	m.SetEmissive(HighlightHover, DefaultHoverColor)
	m.SetEmissive(HighlightGrab, DefaultGrabColor)

	if got := m.Emissive(); got != (Color{1, 0, 1, 1}) {
		t.Errorf("Emissive = %v, want magenta", got)
	}
	if got := m.Shaded(); got != (Color{1, 0.2, 1, 1}) {
		t.Errorf("Shaded = %v, want (1, 0.2, 1, 1)", got)
	}

	var nilMat *Material
	if nilMat.HasEmissive() {
		t.Error("nil material has no emissive")
	}
	if nilMat.Shaded() != ColorWhite {
		t.Error("nil material shades white")
	}
}

func TestFadeHighlighterReachesTarget(t *testing.T) {
	n := NewMeshNode("cube", NewHitCube(1), ColorWhite)
	h := NewFadeHighlighter(DefaultHoverColor, DefaultGrabColor, 0.2)

	h.SetHighlight(n, HighlightHover, true)
	if n.Material.EmissiveChannel(HighlightHover) != (Color{}) {
		t.Error("SetHighlight alone must not change the material")
	}

	h.Update(0.1)
	mid := n.Material.EmissiveChannel(HighlightHover).R
	if mid <= 0 || mid >= 1 {
		t.Errorf("mid-fade R = %v, want in (0, 1)", mid)
	}
	if !h.Fading() {
		t.Error("should still be fading")
	}

	h.Update(0.1)
	if got := n.Material.EmissiveChannel(HighlightHover).R; math.Abs(got-1) > 1e-6 {
		t.Errorf("R = %v, want 1", got)
	}
	if h.Fading() {
		t.Error("fade should be finished")
	}
}

func TestFadeHighlighterOffOnSameFrameIsFree(t *testing.T) {
	n := NewMeshNode("cube", NewHitCube(1), ColorWhite)
	h := NewFadeHighlighter(DefaultHoverColor, DefaultGrabColor, 0.2)
	h.SetHighlight(n, HighlightHover, true)
	h.Update(0.2)
	h.Update(0)

	h.SetHighlight(n, HighlightHover, false)
	h.SetHighlight(n, HighlightHover, true)
	h.Update(0.05)
	if h.Fading() {
		t.Error("off then on within a frame should start no fade")
	}
}

func TestFadeHighlighterRetargets(t *testing.T) {
	n := NewMeshNode("cube", NewHitCube(1), ColorWhite)
	h := NewFadeHighlighter(DefaultHoverColor, DefaultGrabColor, 0.2)
	h.SetHighlight(n, HighlightHover, true)
	h.Update(0.1)

	h.SetHighlight(n, HighlightHover, false)
	h.Update(0.2)
	h.Update(0)
	if got := n.Material.EmissiveChannel(HighlightHover).R; math.Abs(got) > 1e-6 {
		t.Errorf("R = %v, want 0 after fading out", got)
	}
}

func TestFadeHighlighterZeroDuration(t *testing.T) {
	n := NewMeshNode("cube", NewHitCube(1), ColorWhite)
	h := NewFadeHighlighter(DefaultHoverColor, DefaultGrabColor, 0)
	h.SetHighlight(n, HighlightGrab, true)
	h.Update(0)
	if got := n.Material.EmissiveChannel(HighlightGrab); got != DefaultGrabColor {
		t.Errorf("grab = %v, want %v", got, DefaultGrabColor)
	}
}

func TestContextWithFadeSink(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Controllers = 1
	cfg.HighlightFade = 0.1
	ic := NewInteractionContext(cfg)
	cube := cubeAt("cube", 0.25, 0, 1.2, -1.2)
	_ = ic.Register(cube)
	aim(ic, 0, Vec3{0, 1.2, 0}, cube.WorldPosition())

	ic.Update(0.05)
	ic.Update(0.05)
	ic.Update(0)
	if got := cube.Material.EmissiveChannel(HighlightHover).R; math.Abs(got-1) > 1e-6 {
		t.Errorf("hover R = %v, want 1 after the fade", got)
	}
}
