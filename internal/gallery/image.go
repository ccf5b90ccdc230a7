package gallery

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// MaxImageEdge bounds the longer side of an inlined raster image.
const MaxImageEdge = 1200

var ErrNotImage = errors.New("file is not an image")

// EncodeImageFile reads path and returns it as a data URI.
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return EncodeImage(data)
}

// EncodeImage turns raw image bytes into a data: URI. Raster formats larger
// than MaxImageEdge are scaled down first; anything imaging cannot decode
// (svg, webp) is inlined unchanged.
func EncodeImage(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	if !isImage(mtype) {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mtype.String())
	}

	if format, err := imaging.FormatFromExtension(mtype.Extension()); err == nil {
		if scaled, ok, err := downscale(data, format); err != nil {
			return "", err
		} else if ok {
			data = scaled
		}
	}

	return "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func isImage(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("image/png") || m.Is("image/jpeg") || m.Is("image/gif") ||
			m.Is("image/webp") || m.Is("image/svg+xml") || m.Is("image/bmp") || m.Is("image/tiff") {
			return true
		}
	}
	return false
}

// downscale re-encodes the image when it exceeds MaxImageEdge. ok is false
// when the original bytes can be used as they are.
func downscale(data []byte, format imaging.Format) ([]byte, bool, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() <= MaxImageEdge && b.Dy() <= MaxImageEdge {
		return nil, false, nil
	}

	resized := imaging.Fit(img, MaxImageEdge, MaxImageEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, false, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), true, nil
}
