// Package texture provides the RGB images the renderer uploads as textures.
package texture

import (
	"fmt"

	"github.com/Faultbox/meshview/pkg/formats"
)

// Image is tightly packed RGB, top row first.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// FromBMP wraps a decoded bitmap.
func FromBMP(b *formats.BMP) *Image {
	return &Image{Width: b.Width, Height: b.Height, Pix: b.Pix}
}

// Load reads a 24-bit BMP texture from disk.
func Load(path string) (*Image, error) {
	b, err := formats.ParseBMPFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading texture %s: %w", path, err)
	}
	return FromBMP(b), nil
}

// Checkerboard generates a size x size image of cells x cells squares
// alternating between colors a and b. Used when a model has texcoords but no
// texture was given.
func Checkerboard(size, cells int, a, b [3]byte) *Image {
	if cells < 1 {
		cells = 1
	}
	img := &Image{
		Width:  size,
		Height: size,
		Pix:    make([]byte, size*size*3),
	}
	cell := max(size/cells, 1)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			i := (y*size + x) * 3
			copy(img.Pix[i:i+3], c[:])
		}
	}
	return img
}

// BottomUp returns the pixels with rows reversed, the order OpenGL expects
// for texture coordinate v = 0 at the bottom of the image.
func (img *Image) BottomUp() []byte {
	rowSize := img.Width * 3
	out := make([]byte, len(img.Pix))
	for y := 0; y < img.Height; y++ {
		src := img.Pix[y*rowSize : (y+1)*rowSize]
		dst := (img.Height - 1 - y) * rowSize
		copy(out[dst:dst+rowSize], src)
	}
	return out
}
