package texture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/meshview/pkg/formats"
)

func pixelAt(img *Image, x, y int) [3]byte {
	i := (y*img.Width + x) * 3
	return [3]byte{img.Pix[i], img.Pix[i+1], img.Pix[i+2]}
}

func TestCheckerboard(t *testing.T) {
	a := [3]byte{255, 255, 255}
	b := [3]byte{0, 0, 0}
	img := Checkerboard(8, 4, a, b)

	if img.Width != 8 || img.Height != 8 || len(img.Pix) != 8*8*3 {
		t.Fatalf("unexpected image %dx%d with %d bytes", img.Width, img.Height, len(img.Pix))
	}

	tests := []struct {
		x, y int
		want [3]byte
	}{
		{0, 0, a},
		{1, 1, a},
		{2, 0, b},
		{0, 2, b},
		{2, 2, a},
		{7, 7, a},
	}
	for _, tt := range tests {
		if got := pixelAt(img, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCheckerboard_MoreCellsThanPixels(t *testing.T) {
	img := Checkerboard(2, 10, [3]byte{1, 1, 1}, [3]byte{2, 2, 2})
	if pixelAt(img, 0, 0) == pixelAt(img, 1, 0) {
		t.Error("adjacent pixels should alternate when cells exceed size")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.bmp")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	path := filepath.Join(dir, "bad.bmp")
	if err := os.WriteFile(path, []byte("PNG not a bitmap at all, but long enough"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, formats.ErrInvalidBMPMagic) {
		t.Errorf("expected ErrInvalidBMPMagic, got %v", err)
	}
}

func TestBottomUp(t *testing.T) {
	img := &Image{
		Width:  1,
		Height: 3,
		Pix:    []byte{1, 1, 1, 2, 2, 2, 3, 3, 3},
	}
	got := img.BottomUp()
	want := []byte{3, 3, 3, 2, 2, 2, 1, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("BottomUp() = %v, want %v", got, want)
		}
	}
	if img.Pix[0] != 1 {
		t.Error("BottomUp modified the source image")
	}
}
