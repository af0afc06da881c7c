package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode normalized image: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected jpeg output, got %s", format)
	}
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestNormalize_DownscalesWideImage(t *testing.T) {
	n := NewNormalizer(500)

	out, err := n.Normalize(pngBytes(t, 2000, 1000))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	w, h := decodedSize(t, out)
	if w != 500 {
		t.Fatalf("expected width 500, got %d", w)
	}
	if h != 250 {
		t.Fatalf("expected height 250 (aspect preserved), got %d", h)
	}
}

func TestNormalize_DownscalesTallImage(t *testing.T) {
	n := NewNormalizer(500)

	out, err := n.Normalize(pngBytes(t, 600, 1200))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	w, h := decodedSize(t, out)
	if h != 500 {
		t.Fatalf("expected height 500, got %d", h)
	}
	if w != 250 {
		t.Fatalf("expected width 250, got %d", w)
	}
}

func TestNormalize_SmallImageKeptButReencoded(t *testing.T) {
	n := NewNormalizer(500)

	out, err := n.Normalize(pngBytes(t, 120, 80))
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	w, h := decodedSize(t, out)
	if w != 120 || h != 80 {
		t.Fatalf("expected 120x80 untouched, got %dx%d", w, h)
	}
}

func TestNormalize_CorruptInput(t *testing.T) {
	n := NewNormalizer(500)

	if _, err := n.Normalize([]byte("not an image")); err == nil {
		t.Fatalf("expected error for corrupt input")
	}
}
