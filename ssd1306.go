// Package ssd1306 controls a SSD1306 monochrome OLED display via I²C or SPI.
//
// The SSD1306 is a 1-bit dot-matrix controller supporting up to 128x64 pixels.
// Common display resolutions are 128x64 and 128x32.
//
// See the examples for how to use this package.
package ssd1306

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/moskalva/I2CScreen/image1bit"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

var (
	// ErrDeviceNotReady is returned when an operation is attempted before
	// Initialize or after Shutdown.
	ErrDeviceNotReady = errors.New("ssd1306: device not ready")
	// ErrInvalidGeometry is returned for zero or unsupported dimensions.
	ErrInvalidGeometry = image1bit.ErrInvalidGeometry
	// ErrOutOfBounds is returned for pixel coordinates outside a buffer.
	ErrOutOfBounds = image1bit.ErrOutOfBounds
)

// State is the protocol state of a Dev.
type State uint8

const (
	Uninitialized State = iota
	Initializing
	Ready
	AddressingSent
	DataSent
	Off
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initializing:
		return "Initializing"
	case Ready:
		return "Ready"
	case AddressingSent:
		return "AddressingSent"
	case DataSent:
		return "DataSent"
	case Off:
		return "Off"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Opts is the configuration for the SSD1306 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be ≤128)
	H int // Height (default: 64, multiple of 8 between 16 and 64)

	// Rotated turns the picture 180°
	Rotated bool

	// Contrast applied at initialization. 0 selects the default 0x7F; for a
	// zero contrast call SetContrast(0) once the display is initialized.
	Contrast byte

	// Optional hardware reset pin
	RST gpio.PinOut // Reset pin (optional, nil if not used)
}

// Dev is the device handle for the SSD1306 display.
//
// Dev is not safe for concurrent use; callers updating sections from several
// goroutines must serialize access themselves.
type Dev struct {
	// Communication
	link Link
	rst  gpio.PinOut

	// Display geometry
	geom Geometry
	rect image.Rectangle
	opts Opts

	// Full-screen buffers used by Draw and Write
	next *image1bit.VerticalLSB // Frame being composed
	last *image1bit.VerticalLSB // Mirror of the display RAM
	// synced reports whether last matches the display RAM. It is cleared by
	// Initialize and scrolling; Draw then sends the whole frame.
	synced bool

	state State
}

// New creates a Dev that sends over link. The display is left Uninitialized;
// call Initialize before updating sections.
//
// opts can be nil to use defaults (128x64 display).
func New(link Link, opts *Opts) (*Dev, error) {
	if link == nil {
		return nil, errors.New("ssd1306: nil link")
	}
	o, err := normalizeOpts(opts)
	if err != nil {
		return nil, err
	}
	return &Dev{
		link: link,
		rst:  o.RST,
		geom: Geometry{Width: o.W, Height: o.H},
		rect: image.Rect(0, 0, o.W, o.H),
		opts: o,
	}, nil
}

// NewI2C creates and initializes a SSD1306 connected via I²C at addr.
//
// Use DefaultAddr unless the module's SA0 pin is pulled high (0x3D).
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	d, err := New(NewI2CLink(b, addr), opts)
	if err != nil {
		return nil, err
	}
	if err := d.start(); err != nil {
		return nil, err
	}
	return d, nil
}

// NewSPI creates and initializes a SSD1306 connected via 4-wire SPI.
//
// The dc (Data/Command) GPIO pin must be provided and configured as an output.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil {
		return nil, errors.New("ssd1306: dc pin is required")
	}
	link, err := NewSPILink(p, dc)
	if err != nil {
		return nil, err
	}
	d, err := New(link, opts)
	if err != nil {
		return nil, err
	}
	if err := d.start(); err != nil {
		return nil, err
	}
	return d, nil
}

func normalizeOpts(opts *Opts) (Opts, error) {
	o := Opts{W: 128, H: 64}
	if opts != nil {
		o = *opts
	}
	if o.W <= 0 || o.W > 128 {
		return o, fmt.Errorf("%w: width must be between 1 and 128", ErrInvalidGeometry)
	}
	if o.H < 16 || o.H > 64 || o.H%PageHeight != 0 {
		return o, fmt.Errorf("%w: height must be a multiple of 8 between 16 and 64", ErrInvalidGeometry)
	}
	if o.Contrast == 0 {
		o.Contrast = 0x7F
	}
	return o, nil
}

// start resets the controller when a reset pin is wired, then initializes it.
func (d *Dev) start() error {
	if err := d.reset(); err != nil {
		return err
	}
	return d.Initialize()
}

func (d *Dev) reset() error {
	if d.rst == nil {
		return nil
	}
	if err := d.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("ssd1306: failed to pull RST low: %w", err)
	}
	time.Sleep(10 * time.Millisecond)

	if err := d.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("ssd1306: failed to pull RST high: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	return nil
}

// State returns the current protocol state.
func (d *Dev) State() State {
	return d.state
}

// Geometry returns the screen size.
func (d *Dev) Geometry() Geometry {
	return d.geom
}

// Initialize sends the power-up configuration sequence.
//
// Calling it again on a Ready device re-sends the whole sequence. It fails
// with ErrDeviceNotReady after Shutdown.
func (d *Dev) Initialize() error {
	if d.state == Off {
		return fmt.Errorf("%w: display is off", ErrDeviceNotReady)
	}
	prev := d.state
	if prev != Ready {
		prev = Uninitialized
	}
	d.state = Initializing
	d.synced = false
	for _, cmd := range initSequence(&d.opts) {
		if err := d.link.SendCommand(cmd); err != nil {
			d.state = prev
			return err
		}
	}
	d.state = Ready
	return nil
}

// UpdateSection sends the section's buffer to its place on the screen.
//
// The address window is validated before anything is sent: an invalid
// section returns ErrInvalidPosition or ErrSectionOutOfBounds with no
// command emitted.
func (d *Dev) UpdateSection(s Section) error {
	if err := d.ready(); err != nil {
		return err
	}
	w, err := Translate(d.geom, s.Position, s.Buffer)
	if err != nil {
		return err
	}
	defer func() { d.state = Ready }()

	if err := d.link.SendCommand(ColumnAddress(byte(w.StartColumn), byte(w.EndColumn))); err != nil {
		return err
	}
	if err := d.link.SendCommand(PageAddress(byte(w.StartPage), byte(w.EndPage))); err != nil {
		return err
	}
	d.state = AddressingSent

	if err := d.link.SendData(s.Buffer.Bytes()); err != nil {
		return err
	}
	d.state = DataSent
	d.mirror(w, s.Buffer)
	return nil
}

// mirror copies a window just written to the display RAM into the Draw
// buffers, so the next Draw diffs against what is actually on screen.
func (d *Dev) mirror(w AddressWindow, buf *image1bit.VerticalLSB) {
	if d.next == nil {
		return
	}
	n := w.EndColumn - w.StartColumn + 1
	for page := w.StartPage; page <= w.EndPage; page++ {
		src := (page - w.StartPage) * buf.Stride
		dst := page*d.next.Stride + w.StartColumn
		copy(d.next.Pix[dst:dst+n], buf.Pix[src:src+n])
		copy(d.last.Pix[dst:dst+n], buf.Pix[src:src+n])
	}
}

// Shutdown turns the display off. Later calls are no-ops and every other
// operation fails with ErrDeviceNotReady.
func (d *Dev) Shutdown() error {
	if d.state == Off {
		return nil
	}
	d.state = Off
	return d.link.SendCommand(DisplayOff())
}

// Halt implements conn.Resource. It is the same as Shutdown.
func (d *Dev) Halt() error {
	return d.Shutdown()
}

func (d *Dev) ready() error {
	if d.state != Ready {
		return fmt.Errorf("%w: state %s", ErrDeviceNotReady, d.state)
	}
	return nil
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes raw pixel data to the whole display in VerticalLSB format.
// The data must be exactly W * H / 8 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	if len(pixels) != d.geom.Width*d.geom.Pages() {
		return 0, errors.New("ssd1306: invalid buffer size")
	}
	frame := &image1bit.VerticalLSB{Pix: pixels, Stride: d.geom.Width, Rect: d.rect}
	if err := d.UpdateSection(Section{Buffer: frame}); err != nil {
		return 0, err
	}
	if d.next != nil {
		// The whole RAM was rewritten and mirrored.
		d.synced = true
	}
	return len(pixels), nil
}

// Draw draws an image onto the display with differential update optimization.
// The dst rectangle specifies the destination region on the display.
// The src image is positioned at src point sp within the destination.
//
// Only the page/column window that differs from the display RAM is sent.
// The first Draw after Initialize sends the whole frame.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}

	// Clip to display bounds
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Lazy-initialize double buffer
	if d.next == nil {
		d.next, _ = image1bit.NewVerticalLSB(d.geom.Pages(), d.geom.Width)
		d.last, _ = image1bit.NewVerticalLSB(d.geom.Pages(), d.geom.Width)
	}

	draw.Draw(d.next, dst, src, sp, draw.Src)

	minPage, maxPage, minCol, maxCol := 0, d.geom.Pages()-1, 0, d.geom.Width-1
	if d.synced {
		minPage, maxPage, minCol, maxCol = d.calculateDiff()
		if minCol > maxCol {
			// No changes
			return nil
		}
	}

	region := d.extractRegion(minPage, maxPage, minCol, maxCol)
	s := Section{Position: Position{Row: minPage * PageHeight, Column: minCol}, Buffer: region}
	if err := d.UpdateSection(s); err != nil {
		// The RAM content is unknown after a failed transfer.
		d.synced = false
		return err
	}

	copy(d.last.Pix, d.next.Pix)
	d.synced = true
	return nil
}

// calculateDiff compares the last and next buffers to find the minimal
// changed window. Returns minCol > maxCol if nothing changed.
func (d *Dev) calculateDiff() (minPage, maxPage, minCol, maxCol int) {
	width := d.geom.Width
	minPage, maxPage = d.geom.Pages(), -1
	minCol, maxCol = width, -1

	for page := 0; page < d.geom.Pages(); page++ {
		row := page * width
		for x := 0; x < width; x++ {
			if d.last.Pix[row+x] == d.next.Pix[row+x] {
				continue
			}
			minPage = min(minPage, page)
			maxPage = max(maxPage, page)
			minCol = min(minCol, x)
			maxCol = max(maxCol, x)
		}
	}
	return
}

// extractRegion copies the bytes of a page/column window out of next.
func (d *Dev) extractRegion(minPage, maxPage, minCol, maxCol int) *image1bit.VerticalLSB {
	region, _ := image1bit.NewVerticalLSB(maxPage-minPage+1, maxCol-minCol+1)
	for page := minPage; page <= maxPage; page++ {
		src := page*d.next.Stride + minCol
		dst := (page - minPage) * region.Stride
		copy(region.Pix[dst:dst+region.Stride], d.next.Pix[src:src+region.Stride])
	}
	return region
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.link.SendCommand(Contrast(contrast))
}

// Invert inverts the display colors (lit becomes dark and vice versa).
func (d *Dev) Invert(invert bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.link.SendCommand(DisplayPolarity(invert))
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ScrollSpeed defines the horizontal scroll step interval.
type ScrollSpeed byte

const (
	// Scroll step intervals (in frames)
	Speed2Frames   ScrollSpeed = 0x07
	Speed3Frames   ScrollSpeed = 0x04
	Speed4Frames   ScrollSpeed = 0x05
	Speed5Frames   ScrollSpeed = 0x00
	Speed25Frames  ScrollSpeed = 0x06
	Speed64Frames  ScrollSpeed = 0x01
	Speed128Frames ScrollSpeed = 0x02
	Speed256Frames ScrollSpeed = 0x03
)

// ScrollHorizontal starts horizontal scrolling on the display.
// startPage and endPage specify the scroll region (must be < H/8).
// If left is true, scrolls left; otherwise scrolls right.
func (d *Dev) ScrollHorizontal(startPage, endPage byte, speed ScrollSpeed, left bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if int(startPage) >= d.geom.Pages() || int(endPage) >= d.geom.Pages() || startPage > endPage {
		return fmt.Errorf("%w: scroll pages %d-%d", ErrSectionOutOfBounds, startPage, endPage)
	}
	// Scrolling must be stopped before it is reconfigured.
	if err := d.link.SendCommand(DeactivateScroll()); err != nil {
		return err
	}
	if err := d.link.SendCommand(HorizontalScroll(left, startPage, byte(speed&0x07), endPage)); err != nil {
		return err
	}
	// Scrolling shifts the RAM content under the Draw buffers.
	d.synced = false
	return d.link.SendCommand(ActivateScroll())
}

// StopScroll stops all scrolling. The RAM content has to be rewritten
// afterwards since scrolling shifts it.
func (d *Dev) StopScroll() error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.link.SendCommand(DeactivateScroll())
}

var _ display.Drawer = &Dev{}
