package formats

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func parseString(t *testing.T, src string, opts OBJOptions) *OBJ {
	t.Helper()
	obj, err := ParseOBJ(strings.NewReader(src), opts)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	return obj
}

func TestParseOBJ_Triangle(t *testing.T) {
	obj := parseString(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n", OBJOptions{})

	if len(obj.Positions) != 3 {
		t.Fatalf("expected 3 positions, got %d", len(obj.Positions))
	}
	if len(obj.Faces) != 1 {
		t.Fatalf("expected 1 face, got %d", len(obj.Faces))
	}
	face := obj.Faces[0]
	if face.V != [3]int{0, 1, 2} {
		t.Errorf("expected indices (0,1,2), got %v", face.V)
	}
	if face.VT != [3]int{NoIndex, NoIndex, NoIndex} {
		t.Errorf("expected absent texcoords, got %v", face.VT)
	}
	if face.VN != [3]int{NoIndex, NoIndex, NoIndex} {
		t.Errorf("expected absent normals, got %v", face.VN)
	}
}

func TestParseOBJ_Quad(t *testing.T) {
	obj := parseString(t, "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n", OBJOptions{})

	if len(obj.Faces) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(obj.Faces))
	}
	if obj.Faces[0].V != [3]int{0, 1, 2} {
		t.Errorf("first triangle: got %v, want (0,1,2)", obj.Faces[0].V)
	}
	if obj.Faces[1].V != [3]int{0, 2, 3} {
		t.Errorf("second triangle: got %v, want (0,2,3)", obj.Faces[1].V)
	}
}

func TestParseOBJ_FaceCornerForms(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0.5
vt 0.1 0.2
vt 0.3 0.4 0.5
vn 0 0 1
f 1/1/1 2//1 3/3
`
	obj := parseString(t, src, OBJOptions{})

	if len(obj.TexCoords) != 3 {
		t.Fatalf("expected 3 texcoords, got %d", len(obj.TexCoords))
	}
	if obj.TexCoords[0] != (TexCoord{U: 0.5}) {
		t.Errorf("single-value texcoord: got %+v", obj.TexCoords[0])
	}
	if obj.TexCoords[2] != (TexCoord{U: 0.3, V: 0.4, W: 0.5}) {
		t.Errorf("three-value texcoord: got %+v", obj.TexCoords[2])
	}

	face := obj.Faces[0]
	if face.VT != [3]int{0, NoIndex, 2} {
		t.Errorf("texcoord indices: got %v", face.VT)
	}
	if face.VN != [3]int{0, 0, NoIndex} {
		t.Errorf("normal indices: got %v", face.VN)
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	obj := parseString(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n", OBJOptions{})

	if obj.Faces[0].V != [3]int{0, 1, 2} {
		t.Errorf("expected (0,1,2), got %v", obj.Faces[0].V)
	}
}

func TestParseOBJ_IgnoresUnknownAndComments(t *testing.T) {
	src := `# a comment
mtllib cube.mtl
o cube
g side
s off
usemtl mat
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	obj := parseString(t, src, OBJOptions{})

	if len(obj.Positions) != 3 || len(obj.Faces) != 1 {
		t.Errorf("expected 3 positions and 1 face, got %d and %d", len(obj.Positions), len(obj.Faces))
	}
	if obj.Stats.Skipped != 0 {
		t.Errorf("unknown records should not count as skipped, got %d", obj.Stats.Skipped)
	}
}

func TestParseOBJ_ShortRecords(t *testing.T) {
	src := "v 0 0 0\nv 1 0\nv 1 0 0\nv 0 1 0\nvn 0 1\nf 1 2\nf 1 2 3\n"

	t.Run("lenient", func(t *testing.T) {
		obj := parseString(t, src, OBJOptions{})
		if len(obj.Positions) != 3 {
			t.Errorf("expected 3 positions, got %d", len(obj.Positions))
		}
		if obj.Stats.Skipped != 3 {
			t.Errorf("expected 3 skipped records, got %d", obj.Stats.Skipped)
		}
		if len(obj.Faces) != 1 {
			t.Errorf("expected 1 face, got %d", len(obj.Faces))
		}
	})

	t.Run("strict", func(t *testing.T) {
		_, err := ParseOBJ(strings.NewReader(src), OBJOptions{Strict: true})
		if !errors.Is(err, ErrFormat) {
			t.Fatalf("expected ErrFormat, got %v", err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Line != 2 {
			t.Errorf("expected ParseError on line 2, got %v", err)
		}
	})
}

func TestParseOBJ_MalformedNumbers(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"position", "v 0 zero 0\n"},
		{"texcoord", "vt 0.5 half\n"},
		{"normal", "vn 0 0 up\n"},
		{"face index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 two 3\n"},
		{"face texcoord", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/x 2 3\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"too many slashes", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1/1/1 2 3\n"},
		{"missing position", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf /1 2 3\n"},
		{"nan position", "v nan 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"},
		{"inf position", "v inf 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"},
		{"negative infinity normal", "vn 0 -Infinity 0\n"},
		{"nan texcoord", "vt NaN 0\n"},
		{"overflow", "v 1e40 0 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src), OBJOptions{})
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
		})
	}
}

func TestParseOBJ_IndexOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"position", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"texcoord", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1/2 2 3\n"},
		{"normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2 3\n"},
		{"relative", "v 0 0 0\nf -1 -2 -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tt.src), OBJOptions{})
			if !errors.Is(err, ErrIndexOutOfRange) {
				t.Errorf("expected ErrIndexOutOfRange, got %v", err)
			}
		})
	}
}

func TestParseOBJ_ForwardReference(t *testing.T) {
	obj := parseString(t, "f 1 2 3\nv 0 0 0\nv 1 0 0\nv 0 1 0\n", OBJOptions{})
	if len(obj.Faces) != 1 {
		t.Errorf("expected face declared before its vertices to be kept, got %d faces", len(obj.Faces))
	}
}

func TestParseOBJ_DegenerateFaceDropped(t *testing.T) {
	obj := parseString(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 2\nf 1 1 2 2\n", OBJOptions{})

	if len(obj.Faces) != 0 {
		t.Errorf("expected no faces, got %d", len(obj.Faces))
	}
	if obj.Stats.DroppedFaces != 2 {
		t.Errorf("expected 2 dropped faces, got %d", obj.Stats.DroppedFaces)
	}
}

func TestParseOBJ_RepeatedCornerKeepsFan(t *testing.T) {
	// Three distinct positions: the record is kept whole and fanned, so the
	// first triangle repeats a corner.
	obj := parseString(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 1 2 3\n", OBJOptions{})

	if len(obj.Faces) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(obj.Faces))
	}
	if obj.Stats.DroppedFaces != 0 {
		t.Errorf("expected nothing dropped, got %d", obj.Stats.DroppedFaces)
	}
	if got, want := obj.Faces[0].V, [3]int{0, 0, 1}; got != want {
		t.Errorf("first triangle: got %v, want %v", got, want)
	}
	if got, want := obj.Faces[1].V, [3]int{0, 1, 2}; got != want {
		t.Errorf("second triangle: got %v, want %v", got, want)
	}
}

func TestParseOBJ_ColorsFromPalette(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nv 0.5 2 0\nf 1 2 3 4 5\n"

	a := parseString(t, src, OBJOptions{Rand: rand.New(rand.NewPCG(7, 7))})
	b := parseString(t, src, OBJOptions{Rand: rand.New(rand.NewPCG(7, 7))})

	for i, face := range a.Faces {
		if !inPalette(face.Color) {
			t.Errorf("face %d color %v not in palette", i, face.Color)
		}
		if face.Color != b.Faces[i].Color {
			t.Errorf("face %d: same seed produced %v and %v", i, face.Color, b.Faces[i].Color)
		}
	}
}

func TestParseOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test model: %v", err)
	}

	obj, err := ParseOBJFile(path, OBJOptions{})
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}
	if obj.Stats.Lines != 4 {
		t.Errorf("expected 4 lines, got %d", obj.Stats.Lines)
	}

	if _, err := ParseOBJFile(filepath.Join(t.TempDir(), "missing.obj"), OBJOptions{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestTriangulate(t *testing.T) {
	for n := 0; n <= 8; n++ {
		corners := make([]IndexTriple, n)
		for i := range corners {
			corners[i] = IndexTriple{V: i, VT: 10 + i, VN: 20 + i}
		}

		tris := Triangulate(corners)

		want := n - 2
		if n < 3 {
			want = 0
		}
		if len(tris) != want {
			t.Errorf("n=%d: expected %d triangles, got %d", n, want, len(tris))
			continue
		}
		for i, tri := range tris {
			if tri[0] != corners[0] {
				t.Errorf("n=%d tri %d: expected first corner %v, got %v", n, i, corners[0], tri[0])
			}
			if tri[1] != corners[i+1] || tri[2] != corners[i+2] {
				t.Errorf("n=%d tri %d: got %v", n, i, tri)
			}
		}
	}
}

func inPalette(c [3]float32) bool {
	for _, p := range GrayPalette {
		if p == c {
			return true
		}
	}
	return false
}
