package model

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/meshview/pkg/formats"
)

// New builds a normalized model from parsed geometry. The OBJ is not modified.
func New(obj *formats.OBJ) *Model {
	normalized, centroid, scale := Normalize(obj.Positions)

	return &Model{
		Working:   normalized,
		Original:  clonePositions(normalized),
		TexCoords: obj.TexCoords,
		Normals:   obj.Normals,
		Faces:     obj.Faces,
		Centroid:  centroid,
		Scale:     scale,
	}
}

// Normalize centers positions on their centroid and scales them uniformly so
// that max(|x|, |y|) equals TargetExtent. Z does not take part in choosing the
// scale. When there is nothing to scale (no positions, or zero X/Y extent) the
// scale is 1.
func Normalize(positions []mgl32.Vec3) (out []mgl32.Vec3, centroid mgl32.Vec3, scale float32) {
	out = clonePositions(positions)
	if len(out) == 0 {
		return out, mgl32.Vec3{}, 1
	}

	var sum [3]float64
	for _, p := range positions {
		sum[0] += float64(p[0])
		sum[1] += float64(p[1])
		sum[2] += float64(p[2])
	}
	n := float64(len(positions))
	centroid = mgl32.Vec3{float32(sum[0] / n), float32(sum[1] / n), float32(sum[2] / n)}

	var extent float32
	for i := range out {
		out[i] = out[i].Sub(centroid)
		extent = max(extent, abs32(out[i][0]), abs32(out[i][1]))
	}

	if extent == 0 || gomath.IsInf(float64(extent), 0) || gomath.IsNaN(float64(extent)) {
		return out, centroid, 1
	}

	scale = TargetExtent / extent
	for i := range out {
		out[i] = out[i].Mul(scale)
	}
	return out, centroid, scale
}

// Pose returns a model whose working positions are the original positions
// transformed by m. Used when rotation is baked into the vertex data.
func (md *Model) Pose(m mgl32.Mat4) *Model {
	posed := *md
	posed.Working = make([]mgl32.Vec3, len(md.Original))
	for i, p := range md.Original {
		posed.Working[i] = mgl32.TransformCoordinate(p, m)
	}
	return &posed
}

// Restore returns a model whose working positions equal the originals.
func (md *Model) Restore() *Model {
	restored := *md
	restored.Working = clonePositions(md.Original)
	return &restored
}

// HasTexCoords reports whether the model carries any texture coordinates.
func (md *Model) HasTexCoords() bool {
	return len(md.TexCoords) > 0
}

// VertexCount returns the number of vertices the buffer builder emits.
func (md *Model) VertexCount() int {
	return len(md.Faces) * 3
}

// Bounds returns the bounding box of the working positions.
func (md *Model) Bounds() Bounds {
	if len(md.Working) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: md.Working[0], Max: md.Working[0]}
	for _, p := range md.Working[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], p[i])
			b.Max[i] = max(b.Max[i], p[i])
		}
	}
	return b
}

func clonePositions(p []mgl32.Vec3) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(p))
	copy(out, p)
	return out
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
