package jpegll

// AssembleImage packs decoded component planes into an Image whose layout is
// selected from the frame's (component count, precision) pair:
//
//   - 1 component,  8 bit -> FormatGray8
//   - 1 component, 16 bit -> FormatGray16
//   - 3 components, 8 bit -> FormatBGR24
//
// Any other pair fails with an UnsupportedFormatError before anything is
// allocated. Each plane must be row-major with Width*Height samples, one
// plane per component; that is the decoder's contract and is not
// re-validated here.
//
// Samples are narrowed to the destination width by truncation, not
// clamping: an 8-bit path stores sample & 0xff, so a malformed decode that
// produces 300 yields 44. This wrap-around matches the narrowing casts the
// format was defined with, so keep it even though clamping might look more
// sensible for out-of-range input.
func AssembleImage(planes [][]int32, header FrameHeader) (*Image, error) {
	// Single component, assumed to be gray
	if header.Components == 1 {
		switch header.Precision {
		case 8:
			return packGray8(planes[0], header), nil
		case 16:
			return packGray16(planes[0], header), nil
		default:
			return nil, &UnsupportedFormatError{Precision: header.Precision, Components: 1}
		}
	}

	// 3 components, assumed to be RGB
	if header.Components == 3 {
		if header.Precision == 8 {
			return packBGR24(planes, header), nil
		}
		return nil, &UnsupportedFormatError{Precision: header.Precision, Components: 3}
	}

	return nil, &UnsupportedFormatError{Precision: header.Precision, Components: header.Components}
}

// AssembleRaster is AssembleImage without the image.Image wrapper: it
// returns the backing raster of the assembled result. Both entry points
// share one code path so they cannot diverge.
func AssembleRaster(planes [][]int32, header FrameHeader) (*Raster, error) {
	img, err := AssembleImage(planes, header)
	if err != nil {
		return nil, err
	}
	return img.Raster, nil
}

func packGray8(plane []int32, header FrameHeader) *Image {
	r := newRaster(FormatGray8, header.Width, header.Height)
	for i, s := range plane {
		r.Pix[i] = uint8(s)
	}
	return &Image{Raster: r}
}

func packGray16(plane []int32, header FrameHeader) *Image {
	r := newRaster(FormatGray16, header.Width, header.Height)
	for i, s := range plane {
		r.Pix16[i] = uint16(s)
	}
	return &Image{Raster: r}
}

func packBGR24(planes [][]int32, header FrameHeader) *Image {
	r := newRaster(FormatBGR24, header.Width, header.Height)
	// Component 0 (red) lands in the last byte of each triplet.
	for i := 0; i < header.PixelCount(); i++ {
		r.Pix[i*3] = uint8(planes[2][i])
		r.Pix[i*3+1] = uint8(planes[1][i])
		r.Pix[i*3+2] = uint8(planes[0][i])
	}
	return &Image{Raster: r}
}
