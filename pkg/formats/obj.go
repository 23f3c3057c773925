package formats

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// NoIndex marks an absent texcoord or normal reference in a face.
const NoIndex = -1

// maxOBJLine bounds a single line; large exports put long face lists on one line.
const maxOBJLine = 1 << 20

// GrayPalette is the set of display colors a face can be assigned.
var GrayPalette = [6][3]float32{
	{0.0, 0.0, 0.0},
	{0.2, 0.2, 0.2},
	{0.4, 0.4, 0.4},
	{0.6, 0.6, 0.6},
	{0.8, 0.8, 0.8},
	{1.0, 1.0, 1.0},
}

// TexCoord is a texture coordinate. W is 0 when the file omits it.
type TexCoord struct {
	U, V, W float32
}

// IndexTriple is one face corner: position, texcoord and normal indices (0-based).
type IndexTriple struct {
	V, VT, VN int
}

// OBJFace is a triangle with its fixed display color.
type OBJFace struct {
	V     [3]int
	VT    [3]int
	VN    [3]int
	Color [3]float32
}

// OBJStats counts what the parser kept and what it threw away.
type OBJStats struct {
	Lines        int
	Skipped      int // records with too few tokens (lenient mode only)
	DroppedFaces int // face records with fewer than 3 distinct positions
}

// OBJ is a parsed and triangulated geometry file.
type OBJ struct {
	Positions []mgl32.Vec3
	TexCoords []TexCoord
	Normals   []mgl32.Vec3
	Faces     []OBJFace
	Stats     OBJStats
}

// OBJOptions controls parsing.
type OBJOptions struct {
	// Strict turns short records into errors instead of skipping them.
	Strict bool
	// Rand picks face colors. A fixed-seed generator is used when nil.
	Rand *rand.Rand
}

// pendingFace is a face record waiting for index validation.
type pendingFace struct {
	line    int
	corners []IndexTriple
}

// ParseOBJ parses OBJ geometry from r. Polygons are fan-triangulated and every
// triangle is given a color from GrayPalette.
func ParseOBJ(r io.Reader, opts OBJOptions) (*OBJ, error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}

	obj := &OBJ{}
	var pending []pendingFace

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxOBJLine)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		required, known := minFields[fields[0]]
		if !known {
			continue
		}
		if len(fields)-1 < required {
			if opts.Strict {
				return nil, &ParseError{Line: lineNum, Err: fmt.Errorf("%w: %q record needs %d values, got %d",
					ErrFormat, fields[0], required, len(fields)-1)}
			}
			obj.Stats.Skipped++
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, &ParseError{Line: lineNum, Err: err}
			}
			obj.Positions = append(obj.Positions, v)

		case "vn":
			v, err := parseVec3(fields[1:4])
			if err != nil {
				return nil, &ParseError{Line: lineNum, Err: err}
			}
			obj.Normals = append(obj.Normals, v)

		case "vt":
			var tc [3]float32
			for i := 1; i < len(fields) && i <= 3; i++ {
				f, err := parseFloat(fields[i])
				if err != nil {
					return nil, &ParseError{Line: lineNum, Err: err}
				}
				tc[i-1] = f
			}
			obj.TexCoords = append(obj.TexCoords, TexCoord{U: tc[0], V: tc[1], W: tc[2]})

		case "f":
			corners := make([]IndexTriple, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				c, err := parseCorner(tok, len(obj.Positions), len(obj.TexCoords), len(obj.Normals))
				if err != nil {
					return nil, &ParseError{Line: lineNum, Err: err}
				}
				corners = append(corners, c)
			}
			pending = append(pending, pendingFace{line: lineNum, corners: corners})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}
	obj.Stats.Lines = lineNum

	for _, pf := range pending {
		if err := obj.checkIndices(pf.corners); err != nil {
			return nil, &ParseError{Line: pf.line, Err: err}
		}
		if distinctPositions(pf.corners) < 3 {
			obj.Stats.DroppedFaces++
			continue
		}
		for _, tri := range Triangulate(pf.corners) {
			obj.Faces = append(obj.Faces, OBJFace{
				V:     [3]int{tri[0].V, tri[1].V, tri[2].V},
				VT:    [3]int{tri[0].VT, tri[1].VT, tri[2].VT},
				VN:    [3]int{tri[0].VN, tri[1].VN, tri[2].VN},
				Color: PickColor(rng),
			})
		}
	}

	return obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string, opts OBJOptions) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f, opts)
}

// Triangulate fans a polygon from its first corner: (p0, pi, pi+1).
// Polygons with fewer than 3 corners produce nothing. Convexity is not checked.
func Triangulate(corners []IndexTriple) [][3]IndexTriple {
	if len(corners) < 3 {
		return nil
	}
	tris := make([][3]IndexTriple, 0, len(corners)-2)
	for i := 1; i < len(corners)-1; i++ {
		tris = append(tris, [3]IndexTriple{corners[0], corners[i], corners[i+1]})
	}
	return tris
}

// PickColor draws a face color from GrayPalette.
func PickColor(rng *rand.Rand) [3]float32 {
	return GrayPalette[rng.IntN(len(GrayPalette))]
}

// minFields is the number of values each known record kind requires.
var minFields = map[string]int{
	"v":  3,
	"vt": 1,
	"vn": 3,
	"f":  3,
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: invalid number %q", ErrFormat, s)
	}
	return float32(f), nil
}

func parseVec3(fields []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i := range v {
		f, err := parseFloat(fields[i])
		if err != nil {
			return mgl32.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

// parseCorner parses "v", "v/vt", "v//vn" or "v/vt/vn".
func parseCorner(tok string, nPos, nTex, nNorm int) (IndexTriple, error) {
	parts := strings.Split(tok, "/")
	if len(parts) > 3 || parts[0] == "" {
		return IndexTriple{}, fmt.Errorf("%w: invalid face vertex %q", ErrFormat, tok)
	}

	c := IndexTriple{VT: NoIndex, VN: NoIndex}
	var err error
	if c.V, err = parseIndex(parts[0], nPos); err != nil {
		return IndexTriple{}, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.VT, err = parseIndex(parts[1], nTex); err != nil {
			return IndexTriple{}, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.VN, err = parseIndex(parts[2], nNorm); err != nil {
			return IndexTriple{}, err
		}
	}
	return c, nil
}

// parseIndex converts a 1-based (or negative, relative) index to 0-based.
func parseIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid index %q", ErrFormat, s)
	}
	switch {
	case i > 0:
		return i - 1, nil
	case i < 0:
		if count+i < 0 {
			return 0, fmt.Errorf("%w: relative index %d with %d entries", ErrIndexOutOfRange, i, count)
		}
		return count + i, nil
	default:
		return 0, fmt.Errorf("%w: index 0", ErrFormat)
	}
}

func (o *OBJ) checkIndices(corners []IndexTriple) error {
	for _, c := range corners {
		if c.V >= len(o.Positions) {
			return fmt.Errorf("%w: position %d of %d", ErrIndexOutOfRange, c.V+1, len(o.Positions))
		}
		if c.VT != NoIndex && c.VT >= len(o.TexCoords) {
			return fmt.Errorf("%w: texcoord %d of %d", ErrIndexOutOfRange, c.VT+1, len(o.TexCoords))
		}
		if c.VN != NoIndex && c.VN >= len(o.Normals) {
			return fmt.Errorf("%w: normal %d of %d", ErrIndexOutOfRange, c.VN+1, len(o.Normals))
		}
	}
	return nil
}

func distinctPositions(corners []IndexTriple) int {
	seen := make(map[int]struct{}, len(corners))
	for _, c := range corners {
		seen[c.V] = struct{}{}
	}
	return len(seen)
}
