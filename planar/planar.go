// Package planar reads and writes plane dumps: a minimal container for the
// raw component planes an entropy decoder produces, so decoder output can be
// captured once and replayed through the assembler without re-decoding.
//
// Layout: magic "PLND", width and height as big-endian uint32, precision,
// component count and flags as single bytes, then one plane per component.
// Samples are big-endian, one byte each for precision up to 8 bits and two
// bytes otherwise. Flag bit 0 marks a zstd-compressed payload.
package planar

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/kressler/jpeg_lossless_go/jpegll"
)

const magic = "PLND"

const flagZstd = 0x01

// maxPixelCount bounds the per-frame allocation a dump header can demand.
const maxPixelCount = 1 << 28

var ErrInvalidMagic = errors.New("planar: invalid magic")

// Write writes the planes of one frame to w. With compress set, the sample
// payload (not the header) is written as a single zstd frame.
func Write(w io.Writer, planes [][]int32, header jpegll.FrameHeader, compress bool) error {
	if header.Width <= 0 || header.Height <= 0 ||
		int64(header.Width)*int64(header.Height) > maxPixelCount {
		return fmt.Errorf("planar: invalid dimensions %dx%d", header.Width, header.Height)
	}
	if header.Precision < 1 || header.Precision > 16 {
		return fmt.Errorf("planar: precision %d not storable", header.Precision)
	}
	if header.Components < 1 || header.Components > jpegll.MaxComponents {
		return fmt.Errorf("planar: invalid component count %d", header.Components)
	}
	if len(planes) != header.Components {
		return fmt.Errorf("planar: %d planes for %d components", len(planes), header.Components)
	}
	for c, plane := range planes {
		if len(plane) != header.PixelCount() {
			return fmt.Errorf("planar: plane %d has %d samples, want %d", c, len(plane), header.PixelCount())
		}
	}

	var flags uint8
	if compress {
		flags |= flagZstd
	}

	if _, err := w.Write([]byte(magic)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(header.Width)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(header.Height)); err != nil {
		return err
	}
	if _, err := w.Write([]byte{uint8(header.Precision), uint8(header.Components), flags}); err != nil {
		return err
	}

	payload := w
	var zw *zstd.Encoder
	if compress {
		var err error
		zw, err = zstd.NewWriter(w,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("planar: zstd encoder: %w", err)
		}
		payload = zw
	}

	wide := header.Precision > 8
	buf := make([]byte, header.PixelCount()*sampleSize(wide))
	for _, plane := range planes {
		if wide {
			for i, s := range plane {
				binary.BigEndian.PutUint16(buf[i*2:], uint16(s))
			}
		} else {
			for i, s := range plane {
				buf[i] = uint8(s)
			}
		}
		if _, err := payload.Write(buf); err != nil {
			return err
		}
	}

	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("planar: zstd close: %w", err)
		}
	}
	return nil
}

// Reader decodes a plane dump. It satisfies jpegll.Decoder, so a dump can
// be fed straight to jpegll.DecodeImage.
type Reader struct {
	r io.Reader
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Decode reads one frame and returns its planes and header.
func (pr *Reader) Decode() ([][]int32, jpegll.FrameHeader, error) {
	var header jpegll.FrameHeader

	head := make([]byte, len(magic)+8+3)
	if _, err := io.ReadFull(pr.r, head); err != nil {
		return nil, header, fmt.Errorf("planar: reading header: %w", err)
	}
	if !bytes.Equal(head[:len(magic)], []byte(magic)) {
		return nil, header, ErrInvalidMagic
	}

	header.Width = int(binary.BigEndian.Uint32(head[4:]))
	header.Height = int(binary.BigEndian.Uint32(head[8:]))
	header.Precision = int(head[12])
	header.Components = int(head[13])
	flags := head[14]

	if header.Width == 0 || header.Height == 0 ||
		int64(header.Width)*int64(header.Height) > maxPixelCount {
		return nil, header, fmt.Errorf("planar: invalid dimensions %dx%d", header.Width, header.Height)
	}
	if header.Precision < 1 || header.Precision > 16 {
		return nil, header, fmt.Errorf("planar: invalid precision %d", header.Precision)
	}
	if header.Components < 1 || header.Components > jpegll.MaxComponents {
		return nil, header, fmt.Errorf("planar: invalid component count %d", header.Components)
	}

	src := pr.r
	if flags&flagZstd != 0 {
		zr, err := zstd.NewReader(pr.r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, header, fmt.Errorf("planar: zstd decoder: %w", err)
		}
		defer zr.Close()
		src = zr
	}

	wide := header.Precision > 8
	buf := make([]byte, header.PixelCount()*sampleSize(wide))
	planes := make([][]int32, header.Components)
	for c := range planes {
		if _, err := io.ReadFull(src, buf); err != nil {
			return nil, header, fmt.Errorf("planar: reading plane %d: %w", c, err)
		}
		plane := make([]int32, header.PixelCount())
		if wide {
			for i := range plane {
				plane[i] = int32(binary.BigEndian.Uint16(buf[i*2:]))
			}
		} else {
			for i := range plane {
				plane[i] = int32(buf[i])
			}
		}
		planes[c] = plane
	}

	return planes, header, nil
}

// DecodeBytes is a convenience function that takes a byte slice
func DecodeBytes(data []byte) ([][]int32, jpegll.FrameHeader, error) {
	return NewReader(bytes.NewReader(data)).Decode()
}

func sampleSize(wide bool) int {
	if wide {
		return 2
	}
	return 1
}
