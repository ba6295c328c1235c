package willowxr

// Material is the surface description interaction code may touch. Only the
// emissive term is ever changed by highlighting.
type Material struct {
	Color Color

	// Unlit materials have no emissive term and ignore highlights.
	Unlit bool

	emissive [numHighlightChannels]Color
}

// NewMaterial returns a lit material with the given base color.
func NewMaterial(color Color) *Material {
	return &Material{Color: color}
}

// HasEmissive reports whether the material can display a highlight.
func (m *Material) HasEmissive() bool {
	return m != nil && !m.Unlit
}

// SetEmissive sets the emissive contribution of one highlight channel.
// No-op on materials without an emissive term.
func (m *Material) SetEmissive(ch HighlightChannel, c Color) {
	if !m.HasEmissive() || ch >= numHighlightChannels {
		return
	}
	m.emissive[ch] = c
}

// EmissiveChannel returns the contribution of one highlight channel.
func (m *Material) EmissiveChannel(ch HighlightChannel) Color {
	if !m.HasEmissive() || ch >= numHighlightChannels {
		return Color{}
	}
	return m.emissive[ch]
}

// Emissive returns the sum of all highlight channels.
func (m *Material) Emissive() Color {
	var c Color
	if !m.HasEmissive() {
		return c
	}
	for _, e := range m.emissive {
		c = c.Add(e)
	}
	c.A = 1
	return c
}

// Shaded returns the displayed color: base color plus emissive.
func (m *Material) Shaded() Color {
	if m == nil {
		return ColorWhite
	}
	return m.Color.Add(m.Emissive())
}
