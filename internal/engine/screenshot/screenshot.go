// Package screenshot writes captured framebuffers to disk as BMP files.
package screenshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Writer names and writes screenshot files.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// New creates a writer that saves into dir (created on first save) with
// file names starting with prefix.
func New(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture will be written to.
func (w *Writer) Filename() string {
	name := fmt.Sprintf("%s_%s.bmp", w.prefix, w.now().Format("2006-01-02_15-04-05.000"))
	if w.dir == "" {
		return name
	}
	return filepath.Join(w.dir, name)
}

// Save writes RGBA pixels read back from the framebuffer, bottom row first,
// and returns the file name. Alpha is discarded.
func (w *Writer) Save(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid capture size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	img := FromFramebuffer(pixels, width, height)

	path := w.Filename()
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	defer f.Close()

	if err := bmp.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	return path, f.Close()
}

// FromFramebuffer flips bottom-up RGBA rows into an opaque image.
func FromFramebuffer(pixels []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := pixels[(height-1-y)*rowSize : (height-y)*rowSize]
		dst := img.Pix[y*img.Stride : y*img.Stride+rowSize]
		copy(dst, src)
		for x := 3; x < rowSize; x += 4 {
			dst[x] = 0xff
		}
	}
	return img
}
