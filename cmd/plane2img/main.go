// plane2img converts a plane dump (the raw component planes captured from a
// lossless JPEG decode) into a viewable image or a raw raster file.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/nfnt/resize"
	log "github.com/sirupsen/logrus"
	"github.com/xfmoulet/qoi"

	"github.com/kressler/jpeg_lossless_go/jpegll"
	"github.com/kressler/jpeg_lossless_go/planar"
)

func main() {
	inPath := flag.String("in", "", "Input plane dump")
	outPath := flag.String("out", "", "Output file")
	format := flag.String("format", "png", "Output format: png, qoi, gray, bgr")
	width := flag.Uint("width", 0, "Scale output to this width (0 = keep)")
	height := flag.Uint("height", 0, "Scale output to this height (0 = keep)")
	compressRaw := flag.Bool("z", false, "zstd-compress gray/bgr output")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	in, err := os.Open(*inPath)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}
	defer in.Close()

	img, err := jpegll.DecodeImage(planar.NewReader(in))
	if err != nil {
		if uf, ok := jpegll.IsUnsupportedFormat(err); ok {
			log.Fatalf("%s: no packed layout for %d bit, %d component frames",
				*inPath, uf.Precision, uf.Components)
		}
		log.Fatalf("decoding %s: %v", *inPath, err)
	}
	log.Debugf("assembled %s raster, %dx%d", img.Format, img.Width, img.Height)

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("creating output: %v", err)
	}

	switch *format {
	case "png", "qoi":
		var m image.Image = img
		if *width != 0 || *height != 0 {
			m = resize.Resize(*width, *height, img, resize.NearestNeighbor)
			b := m.Bounds()
			log.Debugf("resized to %dx%d", b.Dx(), b.Dy())
		}
		if *format == "png" {
			err = png.Encode(out, m)
		} else {
			err = qoi.Encode(out, m)
		}
	case "gray", "bgr":
		if *width != 0 || *height != 0 {
			err = fmt.Errorf("raw output cannot be scaled")
			break
		}
		err = checkRawFormat(*format, img.Format)
		if err == nil {
			err = writeRaw(out, img.Raster, *compressRaw)
		}
	default:
		err = fmt.Errorf("unknown output format %q", *format)
	}
	if err != nil {
		out.Close()
		os.Remove(*outPath)
		log.Fatalf("writing %s: %v", *outPath, err)
	}

	if err := out.Close(); err != nil {
		log.Fatalf("closing output: %v", err)
	}
	log.Infof("wrote %s (%s)", *outPath, *format)
}

func checkRawFormat(want string, have jpegll.PixelFormat) error {
	switch {
	case want == "gray" && have != jpegll.FormatBGR24:
		return nil
	case want == "bgr" && have == jpegll.FormatBGR24:
		return nil
	}
	return fmt.Errorf("raster is %s, not %s", have, want)
}

// writeRaw writes the raster storage as-is: bytes for Gray8 and BGR24,
// big-endian words for Gray16.
func writeRaw(w io.Writer, r *jpegll.Raster, compress bool) error {
	payload := w
	var zw *zstd.Encoder
	if compress {
		var err error
		zw, err = zstd.NewWriter(w,
			zstd.WithEncoderConcurrency(1),
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return err
		}
		payload = zw
	}

	var err error
	if r.Format == jpegll.FormatGray16 {
		buf := make([]byte, len(r.Pix16)*2)
		for i, v := range r.Pix16 {
			binary.BigEndian.PutUint16(buf[i*2:], v)
		}
		_, err = payload.Write(buf)
	} else {
		_, err = payload.Write(r.Pix)
	}
	if err != nil {
		return err
	}

	if zw != nil {
		return zw.Close()
	}
	return nil
}
