package jpegll

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// TestAssembleGray8 tests packing of single component 8-bit frames
func TestAssembleGray8(t *testing.T) {
	header := FrameHeader{Width: 2, Height: 1, Precision: 8, Components: 1}
	planes := [][]int32{{10, 300}}

	img, err := AssembleImage(planes, header)
	if err != nil {
		t.Fatalf("AssembleImage failed: %v", err)
	}

	if img.Format != FormatGray8 {
		t.Errorf("Format = %s, want Gray8", img.Format)
	}
	// 300 wraps to 44, it must not saturate to 255
	if !bytes.Equal(img.Pix, []byte{10, 44}) {
		t.Errorf("Pix = %v, want [10 44]", img.Pix)
	}
	if img.Pix16 != nil {
		t.Errorf("Pix16 populated for a Gray8 raster")
	}
}

// TestAssembleGray16 tests packing of single component 16-bit frames
func TestAssembleGray16(t *testing.T) {
	header := FrameHeader{Width: 2, Height: 2, Precision: 16, Components: 1}
	planes := [][]int32{{0, 1000, 65535, 70000}}

	img, err := AssembleImage(planes, header)
	if err != nil {
		t.Fatalf("AssembleImage failed: %v", err)
	}

	if img.Format != FormatGray16 {
		t.Errorf("Format = %s, want Gray16", img.Format)
	}
	want := []uint16{0, 1000, 65535, 4464}
	for i, w := range want {
		if img.Pix16[i] != w {
			t.Errorf("Pix16[%d] = %d, want %d", i, img.Pix16[i], w)
		}
	}
	if img.Pix != nil {
		t.Errorf("Pix populated for a Gray16 raster")
	}
}

// TestAssembleBGR24 tests packing of 3 component 8-bit frames
func TestAssembleBGR24(t *testing.T) {
	header := FrameHeader{Width: 1, Height: 1, Precision: 8, Components: 3}
	planes := [][]int32{{5}, {6}, {7}}

	img, err := AssembleImage(planes, header)
	if err != nil {
		t.Fatalf("AssembleImage failed: %v", err)
	}

	if img.Format != FormatBGR24 {
		t.Errorf("Format = %s, want BGR24", img.Format)
	}
	// Component 0 (red) lands last in each triplet
	if !bytes.Equal(img.Pix, []byte{7, 6, 5}) {
		t.Errorf("Pix = %v, want [7 6 5]", img.Pix)
	}
}

// TestAssembleBGR24Order verifies the byte order holds pixel by pixel
func TestAssembleBGR24Order(t *testing.T) {
	header := FrameHeader{Width: 2, Height: 2, Precision: 8, Components: 3}
	planes := [][]int32{
		{10, 11, 12, 13},  // R
		{20, 21, 22, 23},  // G
		{30, 31, 300, 33}, // B (one out-of-range sample)
	}

	img, err := AssembleImage(planes, header)
	if err != nil {
		t.Fatalf("AssembleImage failed: %v", err)
	}

	if len(img.Pix) != 2*2*3 {
		t.Fatalf("len(Pix) = %d, want 12", len(img.Pix))
	}
	for i := 0; i < 4; i++ {
		b := img.Pix[i*3]
		g := img.Pix[i*3+1]
		r := img.Pix[i*3+2]
		if b != uint8(planes[2][i]) || g != uint8(planes[1][i]) || r != uint8(planes[0][i]) {
			t.Errorf("pixel %d = (%d %d %d), want (%d %d %d)",
				i, b, g, r, uint8(planes[2][i]), uint8(planes[1][i]), uint8(planes[0][i]))
		}
	}
}

// TestAssembleUnsupported tests that unsupported (components, precision)
// pairs fail before producing a buffer
func TestAssembleUnsupported(t *testing.T) {
	testCases := []struct {
		name       string
		components int
		precision  int
	}{
		{"2comp8bit", 2, 8},
		{"2comp16bit", 2, 16},
		{"3comp16bit", 3, 16},
		{"1comp12bit", 1, 12},
		{"1comp32bit", 1, 32},
		{"4comp8bit", 4, 8},
		{"0comp8bit", 0, 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			header := FrameHeader{Width: 1, Height: 1, Precision: tc.precision, Components: tc.components}
			planes := make([][]int32, tc.components)
			for i := range planes {
				planes[i] = []int32{0}
			}

			img, err := AssembleImage(planes, header)
			if err == nil {
				t.Fatalf("AssembleImage succeeded with format %s", img.Format)
			}

			uf, ok := IsUnsupportedFormat(err)
			if !ok {
				t.Fatalf("error is %T, want *UnsupportedFormatError", err)
			}
			if uf.Precision != tc.precision || uf.Components != tc.components {
				t.Errorf("error carries (%d bit, %d comp), want (%d, %d)",
					uf.Precision, uf.Components, tc.precision, tc.components)
			}
			if !strings.Contains(err.Error(), "cannot be converted") {
				t.Errorf("unexpected message: %q", err.Error())
			}
		})
	}
}

// TestTruncationNotSaturation pins the wrap-around narrowing rule
func TestTruncationNotSaturation(t *testing.T) {
	img, err := AssembleImage([][]int32{{256}},
		FrameHeader{Width: 1, Height: 1, Precision: 8, Components: 1})
	if err != nil {
		t.Fatalf("AssembleImage failed: %v", err)
	}
	if img.Pix[0] != 0 {
		t.Errorf("8-bit sample 256 packed as %d, want 0", img.Pix[0])
	}

	img, err = AssembleImage([][]int32{{65536}},
		FrameHeader{Width: 1, Height: 1, Precision: 16, Components: 1})
	if err != nil {
		t.Fatalf("AssembleImage failed: %v", err)
	}
	if img.Pix16[0] != 0 {
		t.Errorf("16-bit sample 65536 packed as %d, want 0", img.Pix16[0])
	}
}

// TestAssembleRaster tests that the raster entry point matches the image one
func TestAssembleRaster(t *testing.T) {
	header := FrameHeader{Width: 3, Height: 2, Precision: 8, Components: 3}
	planes := [][]int32{
		{1, 2, 3, 4, 5, 6},
		{11, 12, 13, 14, 15, 16},
		{21, 22, 23, 24, 25, 26},
	}

	raster, err := AssembleRaster(planes, header)
	if err != nil {
		t.Fatalf("AssembleRaster failed: %v", err)
	}
	img, err := AssembleImage(planes, header)
	if err != nil {
		t.Fatalf("AssembleImage failed: %v", err)
	}

	if raster.Format != img.Format || raster.Width != img.Width || raster.Height != img.Height {
		t.Errorf("raster header (%s %dx%d) differs from image (%s %dx%d)",
			raster.Format, raster.Width, raster.Height, img.Format, img.Width, img.Height)
	}
	if !bytes.Equal(raster.Pix, img.Pix) {
		t.Errorf("raster bytes differ from image bytes")
	}

	_, err = AssembleRaster(planes, FrameHeader{Width: 3, Height: 2, Precision: 12, Components: 3})
	if _, ok := IsUnsupportedFormat(err); !ok {
		t.Errorf("AssembleRaster error = %v, want UnsupportedFormatError", err)
	}
}

// fakeDecoder returns canned planes or a canned error
type fakeDecoder struct {
	planes [][]int32
	header FrameHeader
	err    error
}

func (d *fakeDecoder) Decode() ([][]int32, FrameHeader, error) {
	return d.planes, d.header, d.err
}

// TestDecodeImage tests the decoder seam, including error passthrough
func TestDecodeImage(t *testing.T) {
	d := &fakeDecoder{
		planes: [][]int32{{9, 10}},
		header: FrameHeader{Width: 2, Height: 1, Precision: 8, Components: 1},
	}
	img, err := DecodeImage(d)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}
	if !bytes.Equal(img.Pix, []byte{9, 10}) {
		t.Errorf("Pix = %v, want [9 10]", img.Pix)
	}

	// Decoder errors must come back unchanged, not reinterpreted
	sentinel := errors.New("truncated scan data")
	_, err = DecodeImage(&fakeDecoder{err: sentinel})
	if !errors.Is(err, sentinel) {
		t.Errorf("DecodeImage error = %v, want the decoder's own error", err)
	}

	raster, err := DecodeRaster(d)
	if err != nil {
		t.Fatalf("DecodeRaster failed: %v", err)
	}
	if !bytes.Equal(raster.Pix, []byte{9, 10}) {
		t.Errorf("raster Pix = %v, want [9 10]", raster.Pix)
	}
}

func BenchmarkAssembleBGR24(b *testing.B) {
	header := FrameHeader{Width: 1920, Height: 1080, Precision: 8, Components: 3}
	planes := make([][]int32, 3)
	for c := range planes {
		planes[c] = make([]int32, header.PixelCount())
		for i := range planes[c] {
			planes[c][i] = int32(i+c) & 0xff
		}
	}

	b.SetBytes(int64(header.PixelCount() * 3))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := AssembleImage(planes, header); err != nil {
			b.Fatalf("assemble failed: %v", err)
		}
	}
}
