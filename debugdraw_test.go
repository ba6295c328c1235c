package willowxr

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestTopDownViewRoundtrip(t *testing.T) {
	v := TopDownView{OriginX: 320, OriginY: 240, Scale: 100}
	sx, sy := v.WorldToScreen(Vec3{0.5, 9, -1.2})
	assertNear(t, "sx", sx, 370)
	assertNear(t, "sy", sy, 120)

	x, z := v.ScreenToWorld(sx, sy)
	assertNear(t, "x", x, 0.5)
	assertNear(t, "z", z, -1.2)

	x, z = TopDownView{}.ScreenToWorld(10, 10)
	if x != 0 || z != 0 {
		t.Errorf("zero-scale view = (%v, %v), want origin", x, z)
	}
}

func TestColorToRGBA(t *testing.T) {
	tests := []struct {
		in   Color
		want color.RGBA
	}{
		{ColorWhite, color.RGBA{255, 255, 255, 255}},
		{Color{1, 0, 0, 0.5}, color.RGBA{128, 0, 0, 128}},
		{Color{2, -1, 0, 1}, color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := tt.in.toRGBA(); got != tt.want {
			t.Errorf("%v.toRGBA() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDrawDebugSmoke(t *testing.T) {
	ic, cube := grabScene(t, 2)
	scene := NewNode("scene")
	scene.AddChild(ic.Registry().Holder())
	ball := NewMeshNode("ball", HitSphere{Radius: 0.2}, ColorWhite)
	ball.SetPosition(1, 1, -2)
	_ = ic.Register(ball)
	ic.Update(0)
	ic.SelectStart(0)

	dst := ebiten.NewImage(64, 64)
	DrawDebug(dst, TopDownView{OriginX: 32, OriginY: 32, Scale: 10}, scene, ic)
	DrawDebug(dst, TopDownView{Scale: 10}, nil, nil)
	if !ic.Registry().Contains(cube) {
		t.Error("drawing must not change registry state")
	}
}

func TestWhitePixelCreatedOnce(t *testing.T) {
	a := ensureWhitePixel()
	if a == nil {
		t.Fatal("white pixel is nil")
	}
	if b := ensureWhitePixel(); b != a {
		t.Error("white pixel should be reused")
	}
	if w, h := a.Bounds().Dx(), a.Bounds().Dy(); w != 1 || h != 1 {
		t.Errorf("size = %dx%d, want 1x1", w, h)
	}
}
