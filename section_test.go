package ssd1306

import (
	"errors"
	"testing"

	"github.com/moskalva/I2CScreen/image1bit"
)

func TestGeometryValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       Geometry
		wantErr bool
	}{
		{"128x64", Geometry{128, 64}, false},
		{"128x32", Geometry{128, 32}, false},
		{"8x8", Geometry{8, 8}, false},
		{"zero width", Geometry{0, 64}, true},
		{"zero height", Geometry{128, 0}, true},
		{"negative", Geometry{-1, 64}, true},
		{"partial page", Geometry{128, 60}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Validate() error = %v, want ErrInvalidGeometry", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestGeometryPages(t *testing.T) {
	if got := (Geometry{128, 64}).Pages(); got != 8 {
		t.Errorf("Pages() = %d, want 8", got)
	}
	if got := (Geometry{128, 32}).Pages(); got != 4 {
		t.Errorf("Pages() = %d, want 4", got)
	}
}

func TestTranslate(t *testing.T) {
	screen := Geometry{Width: 128, Height: 64}

	tests := []struct {
		name  string
		pos   Position
		pages int
		width int
		want  AddressWindow
	}{
		{"full screen", Position{0, 0}, 8, 128, AddressWindow{0, 7, 0, 127}},
		{"single byte", Position{0, 0}, 1, 1, AddressWindow{0, 0, 0, 0}},
		{"bottom right byte", Position{56, 127}, 1, 1, AddressWindow{7, 7, 127, 127}},
		{"blank section", Position{16, 25}, 1, 45, AddressWindow{2, 2, 25, 69}},
		{"lines section", Position{16, 65}, 3, 32, AddressWindow{2, 4, 65, 96}},
		{"top strip", Position{0, 0}, 2, 128, AddressWindow{0, 1, 0, 127}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := image1bit.NewVerticalLSB(tt.pages, tt.width)
			if err != nil {
				t.Fatal(err)
			}
			got, err := Translate(screen, tt.pos, buf)
			if err != nil {
				t.Fatalf("Translate() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Translate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTranslateErrors(t *testing.T) {
	screen := Geometry{Width: 128, Height: 64}
	buf := func(pages, width int) *image1bit.VerticalLSB {
		b, err := image1bit.NewVerticalLSB(pages, width)
		if err != nil {
			t.Fatal(err)
		}
		return b
	}

	tests := []struct {
		name    string
		g       Geometry
		pos     Position
		buf     *image1bit.VerticalLSB
		wantErr error
	}{
		{"invalid screen", Geometry{0, 64}, Position{}, buf(1, 1), ErrInvalidGeometry},
		{"nil buffer", screen, Position{}, nil, ErrInvalidGeometry},
		{"empty buffer", screen, Position{}, &image1bit.VerticalLSB{}, ErrInvalidGeometry},
		{"negative row", screen, Position{-8, 0}, buf(1, 1), ErrInvalidPosition},
		{"negative column", screen, Position{0, -1}, buf(1, 1), ErrInvalidPosition},
		{"unaligned row", screen, Position{3, 0}, buf(1, 1), ErrInvalidPosition},
		{"column overflow", screen, Position{0, 100}, buf(1, 29), ErrSectionOutOfBounds},
		{"column start off screen", screen, Position{0, 128}, buf(1, 1), ErrSectionOutOfBounds},
		{"page overflow", screen, Position{56, 0}, buf(2, 1), ErrSectionOutOfBounds},
		{"page start off screen", screen, Position{64, 0}, buf(1, 1), ErrSectionOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Translate(tt.g, tt.pos, tt.buf)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Translate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTranslateIsPure(t *testing.T) {
	screen := Geometry{Width: 128, Height: 64}
	buf, _ := image1bit.NewVerticalLSB(3, 32)
	pos := Position{Row: 16, Column: 65}

	first, err := Translate(screen, pos, buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := buf.SetPixel(5, 5, true); err != nil {
		t.Fatal(err)
	}
	second, err := Translate(screen, pos, buf)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("Translate() not repeatable: %+v then %+v", first, second)
	}
	if !buf.BitAt(5, 5) {
		t.Error("Translate() modified the buffer")
	}
}

func TestNewSection(t *testing.T) {
	s, err := NewSection(Position{Row: 8, Column: 4}, 2, 10)
	if err != nil {
		t.Fatalf("NewSection() unexpected error: %v", err)
	}
	if s.Position != (Position{Row: 8, Column: 4}) {
		t.Errorf("Position = %+v", s.Position)
	}
	if s.Buffer.Pages() != 2 || s.Buffer.Width() != 10 {
		t.Errorf("buffer = %d pages x %d, want 2 x 10", s.Buffer.Pages(), s.Buffer.Width())
	}

	if _, err := NewSection(Position{}, 0, 10); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("NewSection(0 pages) error = %v, want ErrInvalidGeometry", err)
	}
}
