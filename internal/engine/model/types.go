// Package model turns parsed geometry into a normalized, render-ready model.
package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/pkg/formats"
)

// TargetExtent is the half-width the larger of the X/Y extents is scaled to.
const TargetExtent = 0.9

// Face is a triangle with its fixed display color.
type Face = formats.OBJFace

// Model is the normalized scene. Values are treated as immutable: Pose and
// Restore return new models that share faces, texcoords and normals.
type Model struct {
	// Working holds the live positions the vertex buffer is built from.
	Working []mgl32.Vec3
	// Original holds the normalized positions before any baked rotation.
	Original []mgl32.Vec3

	TexCoords []formats.TexCoord
	Normals   []mgl32.Vec3
	Faces     []Face

	// Centroid and Scale record what normalization applied to the raw positions.
	Centroid mgl32.Vec3
	Scale    float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Layout describes the interleaved vertex format of a built buffer.
type Layout struct {
	Stride       int // floats per vertex
	HasTexCoords bool
}

// Floats per attribute in the interleaved buffer.
const (
	PositionFloats = 3
	ColorFloats    = 3
	TexCoordFloats = 2
)

// LayoutFor returns the layout used with or without texcoords.
func LayoutFor(includeTexCoords bool) Layout {
	if includeTexCoords {
		return Layout{Stride: PositionFloats + ColorFloats + TexCoordFloats, HasTexCoords: true}
	}
	return Layout{Stride: PositionFloats + ColorFloats}
}

// StrideBytes returns the vertex stride in bytes.
func (l Layout) StrideBytes() int32 {
	return int32(l.Stride * 4)
}
