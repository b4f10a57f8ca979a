package raster

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/moskalva/I2CScreen/image1bit"
)

func newCanvas(t *testing.T, pages, width int) *image1bit.VerticalLSB {
	t.Helper()
	c, err := image1bit.NewVerticalLSB(pages, width)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func pts(xy ...int) []image.Point {
	out := make([]image.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, image.Pt(xy[i], xy[i+1]))
	}
	return out
}

func TestLine(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 image.Point
		want   []image.Point
	}{
		{"single point", image.Pt(3, 5), image.Pt(3, 5), pts(3, 5)},
		{"horizontal", image.Pt(0, 0), image.Pt(4, 0), pts(0, 0, 1, 0, 2, 0, 3, 0, 4, 0)},
		{"horizontal reversed", image.Pt(4, 0), image.Pt(0, 0), pts(4, 0, 3, 0, 2, 0, 1, 0, 0, 0)},
		{"vertical", image.Pt(2, 1), image.Pt(2, 4), pts(2, 1, 2, 2, 2, 3, 2, 4)},
		{"vertical reversed", image.Pt(2, 4), image.Pt(2, 1), pts(2, 4, 2, 3, 2, 2, 2, 1)},
		{"diagonal", image.Pt(0, 0), image.Pt(3, 3), pts(0, 0, 1, 1, 2, 2, 3, 3)},
		{"anti-diagonal", image.Pt(0, 3), image.Pt(3, 0), pts(0, 3, 1, 2, 2, 1, 3, 0)},
		{"steep", image.Pt(0, 0), image.Pt(3, 4), pts(0, 0, 0, 1, 1, 2, 2, 3, 3, 4)},
		{"shallow", image.Pt(0, 0), image.Pt(4, 2), pts(0, 0, 1, 0, 2, 1, 3, 1, 4, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Line(tt.p1, tt.p2)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Line(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestLineEndpoints(t *testing.T) {
	cases := [][2]image.Point{
		{image.Pt(0, 0), image.Pt(31, 23)},
		{image.Pt(31, 0), image.Pt(0, 23)},
		{image.Pt(5, 17), image.Pt(120, 3)},
		{image.Pt(127, 63), image.Pt(0, 0)},
	}
	for _, c := range cases {
		got := Line(c[0], c[1])
		if got[0] != c[0] || got[len(got)-1] != c[1] {
			t.Errorf("Line(%v, %v) runs %v to %v", c[0], c[1], got[0], got[len(got)-1])
		}
		for i := 1; i < len(got); i++ {
			d := got[i].Sub(got[i-1])
			if abs(d.X) > 1 || abs(d.Y) > 1 {
				t.Errorf("Line(%v, %v) has a gap between %v and %v", c[0], c[1], got[i-1], got[i])
			}
		}
	}
}

func TestDrawLine(t *testing.T) {
	c := newCanvas(t, 1, 8)
	if err := DrawLine(c, image.Pt(0, 0), image.Pt(7, 7)); err != nil {
		t.Fatalf("DrawLine() unexpected error: %v", err)
	}
	want := []byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}
	if !slices.Equal(c.Pix, want) {
		t.Errorf("Pix = % X, want % X", c.Pix, want)
	}
}

func TestDrawLineOutOfBounds(t *testing.T) {
	c := newCanvas(t, 1, 8)
	err := DrawLine(c, image.Pt(0, 0), image.Pt(8, 4))
	if !errors.Is(err, image1bit.ErrOutOfBounds) {
		t.Fatalf("DrawLine() error = %v, want ErrOutOfBounds", err)
	}
	for i, b := range c.Pix {
		if b != 0 {
			t.Errorf("Pix[%d] = 0x%02X, want untouched buffer", i, b)
		}
	}
}

func TestDrawPolyline(t *testing.T) {
	c := newCanvas(t, 1, 4)
	if err := DrawPolyline(c, image.Pt(0, 0)); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("DrawPolyline(1 point) error = %v, want ErrTooFewPoints", err)
	}
	if err := DrawPolyline(c); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("DrawPolyline() error = %v, want ErrTooFewPoints", err)
	}

	if err := DrawPolyline(c, image.Pt(0, 0), image.Pt(3, 0), image.Pt(3, 2)); err != nil {
		t.Fatalf("DrawPolyline() unexpected error: %v", err)
	}
	want := []byte{0x01, 0x01, 0x01, 0x07}
	if !slices.Equal(c.Pix, want) {
		t.Errorf("Pix = % X, want % X", c.Pix, want)
	}
}

func TestDrawBorder(t *testing.T) {
	c := newCanvas(t, 2, 4)
	if err := DrawBorder(c); err != nil {
		t.Fatalf("DrawBorder() unexpected error: %v", err)
	}
	// Page 0 holds rows 0-7, page 1 rows 8-15.
	want := []byte{
		0xFF, 0x01, 0x01, 0xFF,
		0xFF, 0x80, 0x80, 0xFF,
	}
	if !slices.Equal(c.Pix, want) {
		t.Errorf("Pix = % X, want % X", c.Pix, want)
	}
}

func TestDrawDiagonals(t *testing.T) {
	c := newCanvas(t, 1, 16)
	if err := DrawDiagonals(c); err != nil {
		t.Fatalf("DrawDiagonals() unexpected error: %v", err)
	}
	// 16x8: two columns per row.
	for i := 0; i < 8; i++ {
		x := 2 * i
		if !c.BitAt(x, i) {
			t.Errorf("pixel (%d, %d) not lit", x, i)
		}
		if !c.BitAt(x, 7-i) {
			t.Errorf("pixel (%d, %d) not lit", x, 7-i)
		}
		if c.BitAt(x+1, i) || c.BitAt(x+1, 7-i) {
			t.Errorf("column %d should be empty", x+1)
		}
	}
}
