// Package image provides utilities for loading, normalising and saving avatar
// images.
package image

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP format
)

// Decoded is an image together with the format it was decoded from.
type Decoded struct {
	Image  image.Image
	Format string
}

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(path string) (Decoded, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: PNG, JPEG, GIF, WebP.
func (l *FileLoader) Load(path string) (Decoded, error) {
	if path == "" {
		return Decoded{}, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Decoded{}, fmt.Errorf("image file not found: %s", path)
		}
		return Decoded{}, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return Decoded{}, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return Decoded{}, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return Decoded{}, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	return Decoded{Image: img, Format: format}, nil
}

// ValidateImagePath checks that path points to a decodable image file
// without decoding the pixel data.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// Normalise returns an RGBA copy of img at size×size. The caller owns the
// result exclusively. Every conversion is logged.
func Normalise(d Decoded, size int, log hclog.Logger) *image.NRGBA {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	src := d.Image
	bounds := src.Bounds()
	log.Info("image loaded", "format", d.Format, "mode", colourModel(src), "size", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()))

	if d.Format != "png" {
		log.Info("image is not PNG, output will be written as PNG", "format", d.Format)
	}

	rgba, isRGBA := src.(*image.NRGBA)
	if !isRGBA {
		log.Info("converting image to RGBA", "mode", colourModel(src))
		rgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	} else {
		rgba = cloneNRGBA(rgba)
	}

	if bounds.Dx() != size || bounds.Dy() != size {
		log.Info("resizing image", "from", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()), "to", fmt.Sprintf("%dx%d", size, size))
		rgba = Resize(rgba, size)
	}
	return rgba
}

// Resize scales img to size×size with Catmull-Rom resampling.
func Resize(img image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// cloneNRGBA copies img onto a fresh buffer anchored at the origin.
func cloneNRGBA(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// colourModel names the colour model of img, for logging.
func colourModel(img image.Image) string {
	switch img.ColorModel() {
	case color.NRGBAModel:
		return "RGBA"
	case color.RGBAModel:
		return "RGBA (premultiplied)"
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.YCbCrModel:
		return "YCbCr"
	case color.CMYKModel:
		return "CMYK"
	}
	if _, ok := img.(*image.Paletted); ok {
		return "P"
	}
	return fmt.Sprintf("%T", img)
}

// SavePNG encodes img as PNG at path, creating or truncating the file.
func SavePNG(path string, img image.Image) error {
	file, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DefaultOutputPath derives "<name>_happy.png" next to the input.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_happy.png"
}
