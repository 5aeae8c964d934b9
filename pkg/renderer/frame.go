package renderer

import (
	"image"
	"image/color"
)

// Pixel is an 8-bit RGB triple
type Pixel struct {
	R, G, B uint8
}

// Frame holds rendered pixels in row-major order, top row first
type Frame struct {
	Width  int
	Height int
	Pix    []Pixel
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

// At returns the pixel in column x of row y
func (f *Frame) At(x, y int) Pixel {
	return f.Pix[y*f.Width+x]
}

// Set stores the pixel in column x of row y
func (f *Frame) Set(x, y int, p Pixel) {
	f.Pix[y*f.Width+x] = p
}

// Row returns the pixels of row y. Distinct rows never share memory, so each
// may be written by a different goroutine.
func (f *Frame) Row(y int) []Pixel {
	return f.Pix[y*f.Width : (y+1)*f.Width]
}

// ToRGBA converts the frame to an opaque image
func (f *Frame) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			p := f.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}
