package captioner

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempImage(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncodeImageLabelsByExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		prefix   string
	}{
		{"jpeg", "photo.jpg", "data:image/jpeg;base64,"},
		{"jpeg uppercase extension", "photo.JPEG", "data:image/jpeg;base64,"},
		{"gif", "animation.gif", "data:image/gif;base64,"},
		{"webp", "picture.webp", "data:image/webp;base64,"},
		{"unknown extension defaults to jpeg", "upload.bin", "data:image/jpeg;base64,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempImage(t, tt.filename, []byte("image bytes"))

			dataURI, err := encodeImage(path)
			if err != nil {
				t.Fatalf("encodeImage: %v", err)
			}
			if !strings.HasPrefix(dataURI, tt.prefix) {
				t.Errorf("data URI prefix: got %q, want %q", dataURI[:min(len(dataURI), 30)], tt.prefix)
			}
		})
	}
}

func TestEncodeImagePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	path := writeTempImage(t, "render.png", buf.Bytes())

	dataURI, err := encodeImage(path)
	if err != nil {
		t.Fatalf("encodeImage: %v", err)
	}
	if !strings.HasPrefix(dataURI, "data:") || !strings.Contains(dataURI, "base64") {
		t.Errorf("unexpected data URI shape: %q", dataURI[:min(len(dataURI), 30)])
	}
}

func TestEncodeImageMissingFile(t *testing.T) {
	if _, err := encodeImage(filepath.Join(t.TempDir(), "missing.jpg")); err == nil {
		t.Error("expected error for missing file")
	}
}
