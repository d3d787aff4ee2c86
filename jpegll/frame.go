// Package jpegll converts the output of a lossless JPEG (process 14) entropy
// decoder into packed pixel rasters.
//
// The entropy decoder itself is an external collaborator: anything that can
// produce one row-major []int32 plane per color component plus a FrameHeader
// can feed this package. Supported output layouts are 8-bit grayscale,
// 16-bit grayscale and 24-bit RGB stored in BGR byte order.
package jpegll

// MaxComponents is the most color components this package and the plane
// dump container accept. Only 1- and 3-component frames have a packed
// layout.
const MaxComponents = 4

// FrameHeader contains the frame metadata an entropy decoder extracts from
// the SOF segment.
type FrameHeader struct {
	// Width is the image width in pixels
	Width int

	// Height is the image height in pixels
	Height int

	// Precision is the sample bit depth
	Precision int

	// Components is the component count
	Components int
}

// PixelCount returns the number of pixels in the frame
func (h FrameHeader) PixelCount() int {
	return h.Width * h.Height
}
