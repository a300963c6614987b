package colour

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrCanvasMismatch is returned when an image does not match the canvas a
// Circle was built for. Inputs are expected to be normalised upstream.
var ErrCanvasMismatch = errors.New("image does not match canvas size")

var (
	transparentWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 0}
	transparentBlack = color.NRGBA{}
)

// ExtractStats carries diagnostics gathered while extracting a palette.
type ExtractStats struct {
	// Masked is the number of pixels whose alpha was forced to zero.
	Masked int
	// OpaqueOutside is set when a masked pixel was not already transparent.
	OpaqueOutside bool
	// FirstOpaque is the first such pixel seen, if any.
	FirstOpaque color.NRGBA
}

// checkCanvas verifies that img covers exactly the circle's canvas.
func checkCanvas(img *image.NRGBA, circle Circle) error {
	if img == nil {
		return fmt.Errorf("%w: image is nil", ErrCanvasMismatch)
	}
	b := img.Bounds()
	if b.Min != (image.Point{}) || b.Dx() != circle.Size || b.Dy() != circle.Size {
		return fmt.Errorf("%w: got %v, want %dx%d", ErrCanvasMismatch, b, circle.Size, circle.Size)
	}
	return nil
}

// ExtractPalette scans img in row-major order and collects the distinct
// colours visible inside the circle. Every other pixel, including transparent
// white and transparent black inside the circle, has its alpha set to zero.
// The image is modified in place.
func ExtractPalette(img *image.NRGBA, circle Circle) (*Palette, ExtractStats, error) {
	var stats ExtractStats
	if err := checkCanvas(img, circle); err != nil {
		return nil, stats, err
	}

	palette := NewPalette()
	for y := 0; y < circle.Size; y++ {
		for x := 0; x < circle.Size; x++ {
			px := img.NRGBAAt(x, y)
			if circle.Contains(x, y) && px != transparentWhite && px != transparentBlack {
				palette.Add(RGB{R: px.R, G: px.G, B: px.B})
				continue
			}

			if px.A != 0 && !stats.OpaqueOutside {
				stats.OpaqueOutside = true
				stats.FirstOpaque = px
			}
			px.A = 0
			img.SetNRGBA(x, y, px)
			stats.Masked++
		}
	}

	return palette, stats, nil
}
