package viewer

import (
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/model"
	"github.com/Faultbox/meshview/internal/engine/texture"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/formats"
)

// Fallback texture used when the model has texcoords but no image was given.
const (
	fallbackTextureSize  = 256
	fallbackTextureCells = 8
)

var (
	fallbackLight = [3]byte{230, 230, 230}
	fallbackDark  = [3]byte{60, 60, 70}
)

// Scene is everything loaded from disk before the window opens.
type Scene struct {
	Model   *model.Model
	Texture *texture.Image // nil when nothing can be textured
	Seed    uint64
}

// LoadOptions controls scene loading.
type LoadOptions struct {
	Strict bool
	Seed   uint64 // face color seed; 0 picks one from the clock
}

// LoadScene parses and normalizes the model and loads the optional texture.
// texturePath may be empty.
func LoadScene(modelPath, texturePath string, opts LoadOptions) (*Scene, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	start := time.Now()
	obj, err := formats.ParseOBJFile(modelPath, formats.OBJOptions{
		Strict: opts.Strict,
		Rand:   NewRand(seed),
	})
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", modelPath, err)
	}

	md := model.New(obj)
	bounds := md.Bounds()

	logger.Info("model loaded",
		zap.String("path", modelPath),
		zap.Int("positions", len(obj.Positions)),
		zap.Int("texcoords", len(obj.TexCoords)),
		zap.Int("normals", len(obj.Normals)),
		zap.Int("triangles", len(obj.Faces)),
		zap.Int("skipped_lines", obj.Stats.Skipped),
		zap.Int("dropped_faces", obj.Stats.DroppedFaces),
		zap.Float32("scale", md.Scale),
		zap.Float32s("bounds_min", bounds.Min[:]),
		zap.Float32s("bounds_max", bounds.Max[:]),
		zap.Uint64("color_seed", seed),
		zap.Duration("took", time.Since(start)),
	)
	if len(obj.Faces) == 0 {
		logger.Warn("model has no faces", zap.String("path", modelPath))
	}

	scene := &Scene{Model: md, Seed: seed}

	switch {
	case texturePath != "":
		img, err := texture.Load(texturePath)
		if err != nil {
			return nil, err
		}
		logger.Info("texture loaded",
			zap.String("path", texturePath),
			zap.Int("width", img.Width),
			zap.Int("height", img.Height),
		)
		if !md.HasTexCoords() {
			logger.Warn("texture given but model has no texture coordinates; every vertex samples (0,0)")
		}
		scene.Texture = img
	case md.HasTexCoords():
		logger.Info("no texture given, using checkerboard")
		scene.Texture = texture.Checkerboard(fallbackTextureSize, fallbackTextureCells, fallbackLight, fallbackDark)
	}

	return scene, nil
}

// NewRand returns the face color generator for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
