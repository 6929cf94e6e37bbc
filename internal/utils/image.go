package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	// DefaultMaxImageWidth and DefaultJPEGQuality match the client-side
	// compressor: uploads shrink to at most 800px wide at quality 70.
	DefaultMaxImageWidth = 800
	DefaultJPEGQuality   = 70
)

// CompressImage decodes an uploaded image, scales it down to at most
// maxWidth preserving aspect ratio, and re-encodes it as a JPEG data URL.
func CompressImage(r io.Reader, maxWidth, quality int) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxWidth {
		scaled := maxWidth * height / width
		if scaled < 1 {
			scaled = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, scaled))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
