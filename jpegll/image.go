package jpegll

import (
	"image"
	"image/color"
)

// Image wraps an assembled Raster as a stdlib image.Image so the result can
// be handed straight to image/png and friends. The embedded Raster is the
// backing store; callers that only want raw samples can take it directly.
type Image struct {
	*Raster
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	switch p.Format {
	case FormatGray16:
		return color.Gray16Model
	case FormatBGR24:
		return color.RGBAModel
	default:
		return color.GrayModel
	}
}

// Bounds returns the image bounds, anchored at the origin.
func (p *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// PixOffset returns the index of the first storage element of the pixel at
// (x, y) in Pix or Pix16.
func (p *Image) PixOffset(x, y int) int {
	return y*p.Stride + x*p.Format.Channels()
}

// At returns the color of the pixel at (x, y).
func (p *Image) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Bounds())) {
		switch p.Format {
		case FormatGray16:
			return color.Gray16{}
		case FormatBGR24:
			return color.RGBA{}
		default:
			return color.Gray{}
		}
	}

	i := p.PixOffset(x, y)
	switch p.Format {
	case FormatGray16:
		return color.Gray16{Y: p.Pix16[i]}
	case FormatBGR24:
		s := p.Pix[i : i+3 : i+3]
		return color.RGBA{R: s[2], G: s[1], B: s[0], A: 0xff}
	default:
		return color.Gray{Y: p.Pix[i]}
	}
}
