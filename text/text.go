// Package text renders strings into 1-bit framebuffers.
//
// Two glyph sources are supported: tinyfont bitmap fonts through WriteLine,
// and golang.org/x/image/font faces through DrawString. In both cases a pixel
// is lit when its alpha exceeds 10% and glyph pixels falling outside the
// framebuffer are dropped.
package text

import (
	"image"
	"image/color"

	"github.com/moskalva/I2CScreen/image1bit"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// alphaThreshold is the highest alpha still rendered as an unlit pixel.
const alphaThreshold = 0xFF / 10

// DefaultFont is the tinyfont used when WriteLine is given a nil font.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

var ink = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

// Displayer adapts a framebuffer to drivers.Displayer.
type Displayer struct {
	fb *image1bit.VerticalLSB
}

var _ drivers.Displayer = (*Displayer)(nil)

// NewDisplayer returns a Displayer drawing into fb.
func NewDisplayer(fb *image1bit.VerticalLSB) *Displayer {
	return &Displayer{fb: fb}
}

// Size returns the framebuffer dimensions in pixels.
func (d *Displayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

// SetPixel lights (x, y) when c's alpha is above 10%; other pixels and
// coordinates outside the framebuffer are ignored.
func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if d.fb == nil || c.A <= alphaThreshold {
		return
	}
	if !image.Pt(int(x), int(y)).In(d.fb.Bounds()) {
		return
	}
	// In bounds, cannot fail.
	_ = d.fb.SetPixel(int(x), int(y), true)
}

// Display is a no-op; sections are flushed with Dev.UpdateSection.
func (d *Displayer) Display() error { return nil }

// WriteLine renders s with a tinyfont font. y is the text baseline.
func WriteLine(fb *image1bit.VerticalLSB, f tinyfont.Fonter, x, y int, s string) {
	if f == nil {
		f = DefaultFont
	}
	tinyfont.WriteLine(NewDisplayer(fb), f, int16(x), int16(y), s, ink)
}

// LineWidth returns the advance of s in pixels for a tinyfont font.
func LineWidth(f tinyfont.Fonter, s string) int {
	if f == nil {
		f = DefaultFont
	}
	_, outbox := tinyfont.LineWidth(f, s)
	return int(outbox)
}

// DrawString renders s with face, basicfont.Face7x13 when nil, and returns
// the advance in pixels. y is the text baseline.
func DrawString(fb *image1bit.VerticalLSB, face font.Face, x, y int, s string) int {
	if face == nil {
		face = basicfont.Face7x13
	}
	mask := image.NewAlpha(fb.Bounds())
	dr := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(x, y),
	}
	dr.DrawString(s)

	d := NewDisplayer(fb)
	b := mask.Bounds()
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			d.SetPixel(int16(px), int16(py), color.RGBA{A: mask.AlphaAt(px, py).A})
		}
	}
	return (dr.Dot.X - fixed.I(x)).Ceil()
}
