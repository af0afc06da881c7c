// Package imaging converts raw photo uploads into the bounded-dimension
// canonical form that is persisted and handed to the face comparator.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

const (
	defaultMaxDimension = 500
	jpegQuality         = 85
)

// Normalizer downscales images so neither dimension exceeds MaxDimension,
// preserving aspect ratio, and re-encodes them as JPEG.
type Normalizer struct {
	maxDimension int
}

func NewNormalizer(maxDimension int) *Normalizer {
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}
	return &Normalizer{maxDimension: maxDimension}
}

// Normalize decodes data (JPEG, PNG, GIF or BMP), scales it down when needed
// and returns consistent JPEG bytes. Undecodable input is an error and leaves
// nothing behind.
func (n *Normalizer) Normalize(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= n.maxDimension && height <= n.maxDimension {
		// Already within bounds; re-encode so every stored image is JPEG.
		return encodeJPEG(img)
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = n.maxDimension
		newHeight = height * n.maxDimension / width
	} else {
		newHeight = n.maxDimension
		newWidth = width * n.maxDimension / height
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	return encodeJPEG(resized)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
