package model

import "github.com/Faultbox/meshview/pkg/formats"

// BuildVertexBuffer interleaves the model into a flat float array ready for
// upload. Each vertex is position, face color and, when includeTexCoords is
// set, a texcoord ((0, 0) for corners without one). The function does not
// modify the model and returns the same output for the same input.
func BuildVertexBuffer(md *Model, includeTexCoords bool) ([]float32, Layout) {
	layout := LayoutFor(includeTexCoords)
	data := make([]float32, 0, md.VertexCount()*layout.Stride)

	for _, face := range md.Faces {
		for j := 0; j < 3; j++ {
			p := md.Working[face.V[j]]
			data = append(data,
				p[0], p[1], p[2],
				face.Color[0], face.Color[1], face.Color[2],
			)

			if !includeTexCoords {
				continue
			}
			var u, v float32
			if vt := face.VT[j]; vt != formats.NoIndex {
				tc := md.TexCoords[vt]
				u, v = tc.U, tc.V
			}
			data = append(data, u, v)
		}
	}

	return data, layout
}
