package viewer

import "github.com/Faultbox/meshview/internal/engine/renderer"

// mixEpsilon absorbs float drift so a whole number of steps lands exactly
// on a bound.
const mixEpsilon = 1e-9

// RenderState holds the fill mode, the shader variant and the texture mix
// animation.
type RenderState struct {
	Fill         renderer.FillMode
	Variant      renderer.ShaderVariant
	Mix          float64 // 0 = face colors, 1 = texture
	Direction    float64 // +1 towards texture, -1 towards colors
	InTransition bool

	step float64
}

// NewRenderState starts filled, color only, with mix at 0 heading up.
func NewRenderState(mixStep float64) RenderState {
	return RenderState{
		Fill:      renderer.FillModeFill,
		Variant:   renderer.ShaderColorOnly,
		Direction: 1,
		step:      mixStep,
	}
}

// CycleFillMode advances Fill, Line, Point.
func (s *RenderState) CycleFillMode() {
	s.Fill = s.Fill.Next()
}

// ToggleShader switches the variant and starts the mix animation towards it.
// It returns false and changes nothing while a transition is running.
func (s *RenderState) ToggleShader() bool {
	if s.InTransition {
		return false
	}
	s.Variant = s.Variant.Toggle()
	s.InTransition = true
	return true
}

// Advance moves the mix one step. At a bound it clamps, ends the transition
// and reverses direction for the next toggle.
func (s *RenderState) Advance() {
	if !s.InTransition {
		return
	}
	s.Mix += s.Direction * s.step
	switch {
	case s.Direction > 0 && s.Mix >= 1-mixEpsilon:
		s.Mix = 1
	case s.Direction < 0 && s.Mix <= mixEpsilon:
		s.Mix = 0
	default:
		return
	}
	s.InTransition = false
	s.Direction = -s.Direction
}

// ActiveVariant is the program to draw with: textured whenever any texture
// is blended in.
func (s RenderState) ActiveVariant() renderer.ShaderVariant {
	if s.Mix > 0 || s.Variant == renderer.ShaderTextured {
		return renderer.ShaderTextured
	}
	return renderer.ShaderColorOnly
}
