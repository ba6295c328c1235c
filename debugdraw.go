package willowxr

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used
// for solid color rectangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// TopDownView maps the world XZ plane to screen pixels, looking down -Y with
// -Z toward the top of the screen.
type TopDownView struct {
	OriginX, OriginY float64 // screen position of the world origin
	Scale            float64 // pixels per world unit
}

// ScreenToWorld converts a screen point to world X and Z.
func (v TopDownView) ScreenToWorld(sx, sy float64) (x, z float64) {
	if v.Scale == 0 {
		return 0, 0
	}
	return (sx - v.OriginX) / v.Scale, (sy - v.OriginY) / v.Scale
}

// WorldToScreen converts a world point to screen coordinates. Y is dropped.
func (v TopDownView) WorldToScreen(p Vec3) (sx, sy float64) {
	return v.OriginX + p[0]*v.Scale, v.OriginY + p[2]*v.Scale
}

// toRGBA converts a Color to an 8-bit color.RGBA (premultiplied).
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// DrawDebug draws a top-down view of root's hit shapes, shaded with their
// current highlights, plus every controller's pointing ray at its current
// RayLength. Intended for desktop testing and the examples.
func DrawDebug(dst *ebiten.Image, v TopDownView, root *Node, ic *InteractionContext) {
	if root != nil {
		RefreshTransforms(root)
		root.Walk(func(n *Node) bool {
			if !n.Visible {
				return false
			}
			if n.HitShape != nil {
				drawShape(dst, v, n)
			}
			return true
		})
	}
	if ic == nil {
		return
	}
	for _, c := range ic.controllers {
		ray := c.Ray()
		x0, y0 := v.WorldToScreen(ray.Origin)
		x1, y1 := v.WorldToScreen(ray.At(c.RayLength))
		clr := color.RGBA{200, 200, 200, 255}
		if c.selected != nil {
			clr = DefaultGrabColor.toRGBA()
		}
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 2, clr, true)
		vector.DrawFilledCircle(dst, float32(x0), float32(y0), 4, clr, true)
	}
}

func drawShape(dst *ebiten.Image, v TopDownView, n *Node) {
	clr := n.Material.Shaded().toRGBA()
	switch s := n.HitShape.(type) {
	case HitBox:
		minX, minZ := math.Inf(1), math.Inf(1)
		maxX, maxZ := math.Inf(-1), math.Inf(-1)
		for i := 0; i < 8; i++ {
			corner := Vec3{s.Min[0], s.Min[1], s.Min[2]}
			if i&1 != 0 {
				corner[0] = s.Max[0]
			}
			if i&2 != 0 {
				corner[1] = s.Max[1]
			}
			if i&4 != 0 {
				corner[2] = s.Max[2]
			}
			w := mgl64.TransformCoordinate(corner, n.worldTransform)
			minX, maxX = math.Min(minX, w[0]), math.Max(maxX, w[0])
			minZ, maxZ = math.Min(minZ, w[2]), math.Max(maxZ, w[2])
		}
		sx, sy := v.WorldToScreen(Vec3{minX, 0, minZ})
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale((maxX-minX)*v.Scale, (maxZ-minZ)*v.Scale)
		op.GeoM.Translate(sx, sy)
		op.ColorScale.ScaleWithColor(clr)
		dst.DrawImage(ensureWhitePixel(), op)
	case HitSphere:
		center := mgl64.TransformCoordinate(s.Center, n.worldTransform)
		sx, sy, sz := mgl64.Extract3DScale(n.worldTransform)
		r := s.Radius * math.Max(math.Abs(sx), math.Max(math.Abs(sy), math.Abs(sz)))
		cx, cy := v.WorldToScreen(center)
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r*v.Scale), clr, true)
	}
}
