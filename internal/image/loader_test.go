package image

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("Failed to write PNG: %v", err)
	}
	return path
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "avatar.png", solid(8, 8, color.NRGBA{R: 200, A: 255}))

	d, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if d.Format != "png" {
		t.Errorf("Format = %q, want png", d.Format)
	}
	if got := d.Image.Bounds().Dx(); got != 8 {
		t.Errorf("width = %d, want 8", got)
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("dummy image data"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "empty path", path: "", wantErr: "cannot be empty"},
		{name: "missing file", path: filepath.Join(dir, "missing.png"), wantErr: "not found"},
		{name: "directory", path: dir, wantErr: "is a directory"},
		{name: "not an image", path: garbage, wantErr: "failed to decode image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileLoader().Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
			if err := ValidateImagePath(tt.path); err == nil {
				t.Error("ValidateImagePath() expected error")
			}
		})
	}
}

func TestValidateImagePath(t *testing.T) {
	path := writePNG(t, t.TempDir(), "ok.png", solid(2, 2, color.NRGBA{A: 255}))
	if err := ValidateImagePath(path); err != nil {
		t.Errorf("ValidateImagePath() error = %v", err)
	}
}

func TestNormaliseResizesAndConverts(t *testing.T) {
	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			src.SetRGBA(x, y, color.RGBA{G: 180, A: 255})
		}
	}
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("Failed to encode JPEG: %v", err)
	}
	decoded, format, err := image.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode JPEG: %v", err)
	}

	var logBuf bytes.Buffer
	log := hclog.New(&hclog.LoggerOptions{Output: &logBuf, Level: hclog.Info})
	got := Normalise(Decoded{Image: decoded, Format: format}, 64, log)

	if b := got.Bounds(); b.Dx() != 64 || b.Dy() != 64 || b.Min != (image.Point{}) {
		t.Fatalf("bounds = %v, want 64x64 at origin", b)
	}
	c := got.NRGBAAt(32, 32)
	if c.A != 255 || c.G < 160 || c.R > 30 || c.B > 30 {
		t.Errorf("centre pixel = %v, want opaque green", c)
	}

	logs := logBuf.String()
	for _, want := range []string{"not PNG", "converting image to RGBA", "resizing image"} {
		if !strings.Contains(logs, want) {
			t.Errorf("log output missing %q:\n%s", want, logs)
		}
	}
}

func TestNormaliseCopiesMatchingImage(t *testing.T) {
	src := solid(16, 16, color.NRGBA{B: 255, A: 255})
	got := Normalise(Decoded{Image: src, Format: "png"}, 16, nil)

	if got == src {
		t.Fatal("Normalise() returned the source buffer, want a copy")
	}
	got.SetNRGBA(0, 0, color.NRGBA{})
	if src.NRGBAAt(0, 0).A != 255 {
		t.Error("writing the result changed the source image")
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := solid(4, 4, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 165, A: 255})
	path := filepath.Join(dir, "out.png")

	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	d, err := NewFileLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	back := Normalise(d, 4, nil)
	if px := back.NRGBAAt(1, 1); px != (color.NRGBA{R: 255, G: 165, A: 255}) {
		t.Errorf("pixel (1, 1) = %v, want opaque orange", px)
	}
	if px := back.NRGBAAt(0, 0); px.A != 0 {
		t.Errorf("pixel (0, 0) alpha = %d, want 0", px.A)
	}

	if err := SavePNG(filepath.Join(dir, "missing", "out.png"), img); err == nil {
		t.Error("SavePNG() expected error for missing directory")
	}
}

func TestDefaultOutputPath(t *testing.T) {
	tests := map[string]string{
		"avatar.png":        "avatar_happy.png",
		"dir/photo.jpeg":    "dir/photo_happy.png",
		"noext":             "noext_happy.png",
		"/tmp/a.b/face.gif": "/tmp/a.b/face_happy.png",
	}
	for in, want := range tests {
		if got := DefaultOutputPath(in); got != want {
			t.Errorf("DefaultOutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	if !IsImageFile("A.PNG") || !IsImageFile("b.webp") {
		t.Error("expected supported extensions to match")
	}
	if IsImageFile("notes.txt") {
		t.Error("did not expect .txt to match")
	}
}
