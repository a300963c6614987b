// Test image generator for creating sample circular avatars
package main

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

const size = 512

func main() {
	// A sad avatar: two greys split top and bottom.
	writeAvatar("testdata/sad.png", func(x, y int) color.NRGBA {
		if y < size/2 {
			return color.NRGBA{R: 96, G: 96, B: 96, A: 255}
		}
		return color.NRGBA{R: 192, G: 192, B: 192, A: 255}
	})

	// A happy avatar: eight hue sectors around the centre.
	writeAvatar("testdata/happy.png", func(x, y int) color.NRGBA {
		colors := []color.NRGBA{
			{R: 255, G: 0, B: 0, A: 255},   // Red
			{R: 255, G: 128, B: 0, A: 255}, // Orange
			{R: 255, G: 255, B: 0, A: 255}, // Yellow
			{R: 0, G: 255, B: 0, A: 255},   // Green
			{R: 0, G: 255, B: 255, A: 255}, // Cyan
			{R: 0, G: 0, B: 255, A: 255},   // Blue
			{R: 128, G: 0, B: 255, A: 255}, // Violet
			{R: 255, G: 0, B: 255, A: 255}, // Magenta
		}
		angle := math.Atan2(float64(y-size/2), float64(x-size/2)) + math.Pi
		sector := int(angle/(2*math.Pi)*float64(len(colors))) % len(colors)
		return colors[sector]
	})
}

// writeAvatar renders fill inside the avatar circle and leaves the corners
// transparent.
func writeAvatar(path string, fill func(x, y int) color.NRGBA) {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := float64(size/2 - 1)
	radius := float64(size / 2)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if math.Hypot(float64(x)-c, float64(y)-c) <= radius {
				img.SetNRGBA(x, y, fill(x, y))
			}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Test avatar created:", path)
}
