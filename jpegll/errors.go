package jpegll

import (
	"errors"
	"fmt"
)

// UnsupportedFormatError reports a (precision, component count) combination
// that has no packed pixel layout. The fields carry the rejected values so
// callers can produce an actionable diagnostic.
type UnsupportedFormatError struct {
	// Precision is the sample bit depth from the frame header
	Precision int

	// Components is the component count from the frame header
	Components int
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("lossless JPEG with %d bit precision and %d component(s) cannot be converted",
		e.Precision, e.Components)
}

// IsUnsupportedFormat checks if an error is an UnsupportedFormatError and returns it
func IsUnsupportedFormat(err error) (*UnsupportedFormatError, bool) {
	var ufErr *UnsupportedFormatError
	if errors.As(err, &ufErr) {
		return ufErr, true
	}
	return nil, false
}
