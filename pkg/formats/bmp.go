package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"

	"golang.org/x/image/bmp"
)

// BMP format errors.
var (
	ErrInvalidBMPMagic     = fmt.Errorf("%w: invalid BMP magic: expected 'BM'", ErrFormat)
	ErrUnsupportedBMPDepth = fmt.Errorf("%w: unsupported BMP bit depth", ErrFormat)
	ErrTruncatedBMPData    = fmt.Errorf("%w: truncated BMP data", ErrFormat)
)

// bmpHeaderLen covers the file header and the info header up to the bit depth.
const bmpHeaderLen = 30

// BMP is a decoded 24-bit bitmap as tightly packed RGB rows, top row first.
type BMP struct {
	Width  int
	Height int
	Pix    []byte
}

// BMPHeader holds the header fields the viewer checks before decoding.
type BMPHeader struct {
	PixelOffset uint32
	Width       int32
	Height      int32
	BitDepth    uint16
}

// ReadBMPHeader validates the magic and reads the fixed header fields.
func ReadBMPHeader(data []byte) (BMPHeader, error) {
	if len(data) < bmpHeaderLen {
		return BMPHeader{}, ErrTruncatedBMPData
	}
	if string(data[0:2]) != "BM" {
		return BMPHeader{}, ErrInvalidBMPMagic
	}
	return BMPHeader{
		PixelOffset: binary.LittleEndian.Uint32(data[10:14]),
		Width:       int32(binary.LittleEndian.Uint32(data[18:22])),
		Height:      int32(binary.LittleEndian.Uint32(data[22:26])),
		BitDepth:    binary.LittleEndian.Uint16(data[28:30]),
	}, nil
}

// ParseBMP decodes an uncompressed 24-bit BMP. Every other bit depth is rejected.
func ParseBMP(data []byte) (*BMP, error) {
	hdr, err := ReadBMPHeader(data)
	if err != nil {
		return nil, err
	}
	if hdr.BitDepth != 24 {
		return nil, fmt.Errorf("%w: %d-bit", ErrUnsupportedBMPDepth, hdr.BitDepth)
	}
	if int64(hdr.PixelOffset) > int64(len(data)) {
		return nil, fmt.Errorf("%w: pixel offset %d beyond %d bytes", ErrTruncatedBMPData, hdr.PixelOffset, len(data))
	}

	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, bmp.ErrUnsupported) {
			return nil, fmt.Errorf("%w: %v", ErrFormat, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTruncatedBMPData, err)
	}

	return toRGB(img), nil
}

// ParseBMPFile decodes a BMP file from disk.
func ParseBMPFile(path string) (*BMP, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading BMP file: %w", err)
	}
	return ParseBMP(data)
}

func toRGB(img image.Image) *BMP {
	b := img.Bounds()
	out := &BMP{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]byte, 0, b.Dx()*b.Dy()*3),
	}

	if rgba, ok := img.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := rgba.Pix[rgba.PixOffset(b.Min.X, y):]
			for x := 0; x < b.Dx(); x++ {
				out.Pix = append(out.Pix, row[x*4], row[x*4+1], row[x*4+2])
			}
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out.Pix = append(out.Pix, byte(r>>8), byte(g>>8), byte(bl>>8))
		}
	}
	return out
}
