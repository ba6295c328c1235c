package willowxr

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenEmissive)
// and call Update(dt) each frame. If the target node is disposed, the group
// stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition creates a TweenGroup that moves node to the given local
// position over duration seconds using the easing function.
func TweenPosition(node *Node, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: node}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(float32(node.Position[i]), float32(to[i]), duration, fn)
		g.fields[i] = &node.Position[i]
	}
	return g
}

// TweenEmissive creates a TweenGroup that animates one highlight channel of
// m toward the given color. Alpha is not animated.
func TweenEmissive(m *Material, ch HighlightChannel, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3}
	e := &m.emissive[ch]
	g.tweens[0] = gween.New(float32(e.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(e.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(e.B), float32(to.B), duration, fn)
	g.fields[0] = &e.R
	g.fields[1] = &e.G
	g.fields[2] = &e.B
	e.A = to.A
	return g
}
