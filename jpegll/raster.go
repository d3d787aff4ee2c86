package jpegll

import "fmt"

// PixelFormat identifies the memory layout of an assembled raster.
type PixelFormat int

const (
	// FormatGray8 is one byte per pixel.
	FormatGray8 PixelFormat = iota

	// FormatGray16 is one unsigned 16-bit word per pixel.
	FormatGray16

	// FormatBGR24 is three bytes per pixel in blue, green, red order.
	FormatBGR24
)

// String returns the string representation of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatGray16:
		return "Gray16"
	case FormatBGR24:
		return "BGR24"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}

// Channels returns the number of samples per pixel.
func (f PixelFormat) Channels() int {
	if f == FormatBGR24 {
		return 3
	}
	return 1
}

// BytesPerSample returns the storage width of one sample.
func (f PixelFormat) BytesPerSample() int {
	if f == FormatGray16 {
		return 2
	}
	return 1
}

// Raster holds the packed samples of one assembled frame, without any color
// model attached. Exactly one of Pix and Pix16 is populated: Pix backs
// FormatGray8 and FormatBGR24, Pix16 backs FormatGray16.
type Raster struct {
	Format PixelFormat

	Width  int
	Height int

	// Stride is the number of Pix (or Pix16) elements per row.
	Stride int

	// Pix holds the packed bytes for FormatGray8 and FormatBGR24.
	// For FormatBGR24 the pixel at (x, y) starts at Pix[y*Stride+x*3].
	Pix []uint8

	// Pix16 holds the packed words for FormatGray16.
	Pix16 []uint16
}

// Len returns the number of storage elements in the raster.
func (r *Raster) Len() int {
	if r.Format == FormatGray16 {
		return len(r.Pix16)
	}
	return len(r.Pix)
}

func newRaster(format PixelFormat, width, height int) *Raster {
	r := &Raster{
		Format: format,
		Width:  width,
		Height: height,
		Stride: width * format.Channels(),
	}
	if format == FormatGray16 {
		r.Pix16 = make([]uint16, width*height)
	} else {
		r.Pix = make([]uint8, width*height*format.Channels())
	}
	return r
}
