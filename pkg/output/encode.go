package output

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Format selects an image encoding
type Format int

const (
	FormatPPM       Format = iota // Plain-text PPM (P3)
	FormatBinaryPPM               // Binary PPM (P6)
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatPPM:
		return "ppm"
	case FormatBinaryPPM:
		return "p6"
	case FormatPNG:
		return "png"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// IsBinary reports whether the encoding produces non-text bytes
func (f Format) IsBinary() bool {
	return f != FormatPPM
}

// ParseFormat parses a format name as accepted by the -format flag
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "ppm", "p3":
		return FormatPPM, nil
	case "p6", "pnm":
		return FormatBinaryPPM, nil
	case "png":
		return FormatPNG, nil
	default:
		return 0, fmt.Errorf("unknown output format %q (want ppm, p6 or png)", name)
	}
}

// FormatForPath picks the format from a file extension. "-" (stdout) is plain PPM.
func FormatForPath(path string) (Format, error) {
	if path == "-" {
		return FormatPPM, nil
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("cannot infer output format for %q without an extension", path)
	}
	return ParseFormat(ext)
}

// Encode writes the frame to w in the given format
func Encode(w io.Writer, frame *renderer.Frame, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, frame)
	case FormatBinaryPPM:
		return WriteBinaryPPM(w, frame)
	case FormatPNG:
		return WritePNG(w, frame)
	default:
		return fmt.Errorf("unsupported output format %v", format)
	}
}

// WritePPM writes a plain-text PPM with one "r g b" line per pixel, top row first
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height)
	for _, p := range frame.Pix {
		fmt.Fprintf(bw, "%d %d %d\n", p.R, p.G, p.B)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing PPM: %w", err)
	}
	return nil
}

// WriteBinaryPPM writes a binary PPM
func WriteBinaryPPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6\n%d %d\n255\n", frame.Width, frame.Height)
	for _, p := range frame.Pix {
		bw.Write([]byte{p.R, p.G, p.B})
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing PPM: %w", err)
	}
	return nil
}

// WritePNG writes an opaque PNG
func WritePNG(w io.Writer, frame *renderer.Frame) error {
	if err := png.Encode(w, frame.ToRGBA()); err != nil {
		return fmt.Errorf("while encoding PNG: %w", err)
	}
	return nil
}
