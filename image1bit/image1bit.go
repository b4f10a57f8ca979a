// Package image1bit provides a 1-bit image format optimized for the SSD1306 display.
//
// The SSD1306 stores pixels in vertical bytes, 8 rows per byte ("page").
// Bit 0 is the top row of the page, bit 7 the bottom row.
// This package provides the Bit color type and VerticalLSB image implementation.
package image1bit

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// PageHeight is the number of pixel rows packed into one byte.
const PageHeight = 8

var (
	// ErrOutOfBounds is returned when a pixel coordinate lies outside the image.
	ErrOutOfBounds = errors.New("image1bit: pixel out of bounds")
	// ErrInvalidGeometry is returned when an image is created with a zero or
	// negative size.
	ErrInvalidGeometry = errors.New("image1bit: invalid geometry")
)

// Bit represents a monochrome pixel: true is lit, false is dark.
type Bit bool

const (
	On  Bit = true
	Off Bit = false
)

// RGBA implements color.Color. Lit pixels are white.
func (b Bit) RGBA() (r, g, bl, a uint32) {
	if b {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

// toBit converts any color.Color to Bit.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// VerticalLSB is a 1-bit image where each byte holds 8 vertically stacked pixels.
// The least significant bit is the top pixel.
type VerticalLSB struct {
	Pix    []byte          // Pixel data (8 pixels per byte, page-major)
	Stride int             // Bytes per page, equal to the width
	Rect   image.Rectangle // Image bounds, always anchored at (0, 0)
}

// NewVerticalLSB creates a new image covering pages*8 rows and width columns.
func NewVerticalLSB(pages, width int) (*VerticalLSB, error) {
	if pages <= 0 {
		return nil, fmt.Errorf("%w: page count %d", ErrInvalidGeometry, pages)
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: width %d", ErrInvalidGeometry, width)
	}
	return &VerticalLSB{
		Pix:    make([]byte, pages*width),
		Stride: width,
		Rect:   image.Rect(0, 0, width, pages*PageHeight),
	}, nil
}

// Pages returns the number of 8 pixel bands covered by the image.
func (p *VerticalLSB) Pages() int {
	return p.Rect.Dy() / PageHeight
}

// Width returns the horizontal extent in pixels.
func (p *VerticalLSB) Width() int {
	return p.Rect.Dx()
}

// Height returns the vertical extent in pixels, always Pages()*8.
func (p *VerticalLSB) Height() int {
	return p.Rect.Dy()
}

// Bytes returns the packed buffer in page, then column order.
//
// The slice aliases the image memory and must not be modified.
func (p *VerticalLSB) Bytes() []byte {
	return p.Pix
}

// Clear turns every pixel off.
func (p *VerticalLSB) Clear() {
	clear(p.Pix)
}

// SetPixel sets (on) or clears the pixel at (x, y).
//
// Unlike Set, it never clips: a coordinate outside the image returns
// ErrOutOfBounds and leaves the buffer untouched.
func (p *VerticalLSB) SetPixel(x, y int, on bool) error {
	if x < 0 || x >= p.Width() {
		return fmt.Errorf("%w: column %d outside width %d", ErrOutOfBounds, x, p.Width())
	}
	if y < 0 || y/PageHeight >= p.Pages() {
		return fmt.Errorf("%w: row %d outside height %d", ErrOutOfBounds, y, p.Height())
	}
	offset, bit := p.pixOffset(x, y)
	if on {
		p.Pix[offset] |= 1 << bit
	} else {
		p.Pix[offset] &^= 1 << bit
	}
	return nil
}

// BitAt returns the pixel at (x, y). Out of range pixels read as Off.
func (p *VerticalLSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	offset, bit := p.pixOffset(x, y)
	return p.Pix[offset]&(1<<bit) != 0
}

// ColorModel returns the color model of the image.
func (p *VerticalLSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *VerticalLSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *VerticalLSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// Set sets the color of the pixel at (x, y).
// It implements draw.Image; pixels outside the image are ignored.
func (p *VerticalLSB) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, bit := p.pixOffset(x, y)
	if BitModel.Convert(c).(Bit) {
		p.Pix[offset] |= 1 << bit
	} else {
		p.Pix[offset] &^= 1 << bit
	}
}

// pixOffset returns the byte offset and bit index for the pixel at (x, y).
// Memory layout: byte = page*Stride + x, bit = y within the page.
func (p *VerticalLSB) pixOffset(x, y int) (offset int, bit uint) {
	offset = (y/PageHeight)*p.Stride + x
	bit = uint(y % PageHeight)
	return
}
