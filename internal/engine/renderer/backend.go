// Package renderer defines the rendering backend the viewer draws through.
// The OpenGL implementation lives in renderer/glbackend.
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/texture"
)

// FillMode is the polygon rasterization mode.
type FillMode int

// Fill modes, in cycle order.
const (
	FillModeFill FillMode = iota
	FillModeLine
	FillModePoint
	fillModeCount
)

// Next returns the following mode: Fill, Line, Point, then Fill again.
func (m FillMode) Next() FillMode {
	return (m + 1) % fillModeCount
}

func (m FillMode) String() string {
	switch m {
	case FillModeFill:
		return "Fill"
	case FillModeLine:
		return "Line"
	case FillModePoint:
		return "Point"
	default:
		return fmt.Sprintf("FillMode(%d)", int(m))
	}
}

// ShaderVariant selects the shading path.
type ShaderVariant int

// Shader variants.
const (
	ShaderColorOnly ShaderVariant = iota
	ShaderTextured
)

// Toggle returns the other variant.
func (v ShaderVariant) Toggle() ShaderVariant {
	if v == ShaderColorOnly {
		return ShaderTextured
	}
	return ShaderColorOnly
}

func (v ShaderVariant) String() string {
	switch v {
	case ShaderColorOnly:
		return "ColorOnly"
	case ShaderTextured:
		return "Textured"
	default:
		return fmt.Sprintf("ShaderVariant(%d)", int(v))
	}
}

// BufferHandle identifies an uploaded vertex buffer.
type BufferHandle uint32

// TextureHandle identifies an uploaded texture.
type TextureHandle uint32

// Backend is everything the viewer needs from the GPU side.
type Backend interface {
	CreateVertexBuffer(data []float32, layout model.Layout) (BufferHandle, error)
	DestroyVertexBuffer(h BufferHandle)
	CreateTexture(img *texture.Image) (TextureHandle, error)
	DestroyTexture(h TextureHandle)

	UseShaderVariant(v ShaderVariant)
	SetUniformMatrices(modelMat, view, projection mgl32.Mat4)
	SetTextureMix(mix float32)
	BindTexture(h TextureHandle)
	SetPolygonMode(m FillMode)

	BeginFrame()
	DrawTriangles(h BufferHandle, vertexCount int32)
	PresentFrame()
	Resize(width, height int)

	// ReadPixels returns the current back buffer as RGBA, bottom row first.
	ReadPixels() (pixels []byte, width, height int)
}
