package jpegll

// Decoder is the upstream entropy decoder. A single Decode call produces
// one plane per component plus the frame header; the planes are read once
// by the assembler and never retained.
type Decoder interface {
	Decode() (planes [][]int32, header FrameHeader, err error)
}

// DecodeImage runs the decoder and packs its output into an Image. Errors
// from the decoder itself (malformed stream, short read) are returned
// unchanged; only the format dispatch can add an UnsupportedFormatError.
func DecodeImage(d Decoder) (*Image, error) {
	planes, header, err := d.Decode()
	if err != nil {
		return nil, err
	}
	return AssembleImage(planes, header)
}

// DecodeRaster runs the decoder and returns the backing raster of the
// assembled result.
func DecodeRaster(d Decoder) (*Raster, error) {
	img, err := DecodeImage(d)
	if err != nil {
		return nil, err
	}
	return img.Raster, nil
}
