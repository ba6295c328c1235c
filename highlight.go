package willowxr

import "github.com/tanema/gween/ease"

// HighlightSink applies visible highlight changes to an object and its
// descendants. Implementations skip nodes without a highlightable material;
// they never fail.
type HighlightSink interface {
	SetHighlight(n *Node, ch HighlightChannel, on bool)
}

// updater is implemented by sinks that animate over time. The frame
// coordinator advances them once per frame.
type updater interface {
	Update(dt float64)
}

// DefaultHoverColor and DefaultGrabColor match the red/blue emissive
// highlights of the VR grab demo.
var (
	DefaultHoverColor = Color{R: 1, A: 1}
	DefaultGrabColor  = Color{B: 1, A: 1}
)

// EmissiveHighlighter sets the emissive channel of every lit material in the
// object's subtree immediately.
type EmissiveHighlighter struct {
	Colors [numHighlightChannels]Color
}

// NewEmissiveHighlighter returns a sink using the given channel colors.
func NewEmissiveHighlighter(hover, grab Color) *EmissiveHighlighter {
	return &EmissiveHighlighter{Colors: [numHighlightChannels]Color{hover, grab}}
}

// SetHighlight implements HighlightSink.
func (h *EmissiveHighlighter) SetHighlight(n *Node, ch HighlightChannel, on bool) {
	if n == nil || ch >= numHighlightChannels {
		return
	}
	var c Color
	if on {
		c = h.Colors[ch]
	}
	n.Walk(func(d *Node) bool {
		if d.Material.HasEmissive() {
			d.Material.SetEmissive(ch, c)
		}
		return true
	})
}

// --- Fading ---

type fadeKey struct {
	m  *Material
	ch HighlightChannel
}

type fade struct {
	to    Color
	tween *TweenGroup
}

// FadeHighlighter eases emissive channels toward their target instead of
// switching them. SetHighlight only records the wanted color; tweens start in
// Update, so an off/on pair within one frame costs nothing.
type FadeHighlighter struct {
	Colors   [numHighlightChannels]Color
	Duration float32
	Ease     ease.TweenFunc

	want   map[fadeKey]Color
	active map[fadeKey]*fade
	done   []fadeKey
}

// NewFadeHighlighter returns a fading sink. duration is in seconds.
func NewFadeHighlighter(hover, grab Color, duration float32) *FadeHighlighter {
	return &FadeHighlighter{
		Colors:   [numHighlightChannels]Color{hover, grab},
		Duration: duration,
		Ease:     ease.OutQuad,
		want:     make(map[fadeKey]Color),
		active:   make(map[fadeKey]*fade),
	}
}

// SetHighlight implements HighlightSink.
func (h *FadeHighlighter) SetHighlight(n *Node, ch HighlightChannel, on bool) {
	if n == nil || ch >= numHighlightChannels {
		return
	}
	var c Color
	if on {
		c = h.Colors[ch]
	}
	n.Walk(func(d *Node) bool {
		if d.Material.HasEmissive() {
			h.want[fadeKey{d.Material, ch}] = c
		}
		return true
	})
}

// Update starts tweens for changed targets and advances running ones.
func (h *FadeHighlighter) Update(dt float64) {
	for k, c := range h.want {
		f, ok := h.active[k]
		if ok && f.to == c {
			continue
		}
		if !ok && k.m.EmissiveChannel(k.ch) == c {
			continue
		}
		if h.Duration <= 0 {
			k.m.SetEmissive(k.ch, c)
			delete(h.active, k)
			continue
		}
		h.active[k] = &fade{to: c, tween: TweenEmissive(k.m, k.ch, c, h.Duration, h.Ease)}
	}
	clear(h.want)

	h.done = h.done[:0]
	for k, f := range h.active {
		f.tween.Update(float32(dt))
		if f.tween.Done {
			h.done = append(h.done, k)
		}
	}
	for _, k := range h.done {
		delete(h.active, k)
	}
}

// Fading reports whether any channel is still animating.
func (h *FadeHighlighter) Fading() bool {
	return len(h.active) > 0
}
