package ssd1306

import (
	"errors"
	"fmt"

	"github.com/moskalva/I2CScreen/image1bit"
)

// PageHeight is the number of pixel rows the controller packs into one page.
const PageHeight = image1bit.PageHeight

var (
	// ErrInvalidPosition is returned for a section whose row is not page
	// aligned or whose position is negative.
	ErrInvalidPosition = errors.New("ssd1306: invalid section position")
	// ErrSectionOutOfBounds is returned when a section does not fit the screen.
	ErrSectionOutOfBounds = errors.New("ssd1306: section out of bounds")
)

// Geometry is the size of the physical screen in pixels.
type Geometry struct {
	Width  int
	Height int
}

// Pages returns the number of controller pages.
func (g Geometry) Pages() int {
	return g.Height / PageHeight
}

// Validate checks that both dimensions are positive and the height is a
// whole number of pages.
func (g Geometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, g.Width, g.Height)
	}
	if g.Height%PageHeight != 0 {
		return fmt.Errorf("%w: height %d is not a multiple of %d", ErrInvalidGeometry, g.Height, PageHeight)
	}
	return nil
}

// Position is the top-left pixel of a section on the screen.
type Position struct {
	Row    int // Pixel row, must be a multiple of PageHeight
	Column int // Pixel column
}

// Section is an independently addressable rectangular region of the screen.
// The buffer is owned by the caller and only read by Dev.UpdateSection.
type Section struct {
	Position Position
	Buffer   *image1bit.VerticalLSB
}

// NewSection allocates a section of the given size at pos.
func NewSection(pos Position, pages, width int) (Section, error) {
	buf, err := image1bit.NewVerticalLSB(pages, width)
	if err != nil {
		return Section{}, err
	}
	return Section{Position: pos, Buffer: buf}, nil
}

// AddressWindow is the controller page/column range a section maps to.
// Bounds are inclusive, as the controller expects them.
type AddressWindow struct {
	StartPage   int
	EndPage     int
	StartColumn int
	EndColumn   int
}

// Translate maps a section's position and buffer extent to the controller
// address window.
//
// It has no side effects, so the result can be recomputed before every write.
func Translate(g Geometry, pos Position, buf *image1bit.VerticalLSB) (AddressWindow, error) {
	if err := g.Validate(); err != nil {
		return AddressWindow{}, err
	}
	if buf == nil || buf.Pages() <= 0 || buf.Width() <= 0 {
		return AddressWindow{}, fmt.Errorf("%w: empty section buffer", ErrInvalidGeometry)
	}
	if pos.Row < 0 || pos.Column < 0 {
		return AddressWindow{}, fmt.Errorf("%w: (%d, %d)", ErrInvalidPosition, pos.Row, pos.Column)
	}
	// Only whole pages can be addressed; a sub-page offset would overwrite
	// the neighbouring rows of the first and last page.
	if pos.Row%PageHeight != 0 {
		return AddressWindow{}, fmt.Errorf("%w: row %d is not a multiple of %d", ErrInvalidPosition, pos.Row, PageHeight)
	}

	w := AddressWindow{
		StartPage:   ceilDiv(pos.Row, PageHeight),
		EndPage:     ceilDiv(pos.Row+buf.Height(), PageHeight) - 1,
		StartColumn: pos.Column,
		EndColumn:   pos.Column + buf.Width() - 1,
	}
	if w.StartPage >= g.Pages() || w.EndPage >= g.Pages() {
		return AddressWindow{}, fmt.Errorf("%w: pages %d-%d, screen has %d", ErrSectionOutOfBounds, w.StartPage, w.EndPage, g.Pages())
	}
	if w.StartColumn >= g.Width || w.EndColumn >= g.Width {
		return AddressWindow{}, fmt.Errorf("%w: columns %d-%d, screen has %d", ErrSectionOutOfBounds, w.StartColumn, w.EndColumn, g.Width)
	}
	return w, nil
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
