// Package ssd1306 controls a SSD1306 monochrome OLED display via I²C or SPI.
//
// The SSD1306 is a 1-bit OLED controller supporting up to 128×64 pixels.
// This driver implements the display.Drawer interface from periph.io and
// additionally exposes the controller's page based addressing through
// sections: independently updatable rectangular regions of the screen.
//
// # Display Characteristics
//
// - Monochrome, 1 bit per pixel
// - 128×64, 128×32 or 96×16 panels (any width ≤128, height 16 to 64)
// - Display RAM split into pages of 8 pixel rows; one byte per page column
// - Hardware scrolling support (horizontal only)
// - Adjustable contrast (0-255)
// - Display inversion
//
// # Hardware Connection
//
// Most SSD1306 modules are wired over I²C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C Clock (SCL)
//	SDA         → I²C Data (SDA)
//
// SPI modules also need a DC (Data/Command) GPIO and optionally RES.
//
// # Basic Usage
//
// Example of creating a display and drawing into a section:
//
//	package main
//
//	import (
//		"image"
//		"periph.io/x/conn/v3/i2c/i2creg"
//		ssd1306 "github.com/moskalva/I2CScreen"
//		"github.com/moskalva/I2CScreen/raster"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open I²C bus
//		bus, _ := i2creg.Open("")
//		defer bus.Close()
//
//		// Create and initialize the device
//		dev, _ := ssd1306.NewI2C(bus, ssd1306.DefaultAddr, &ssd1306.Opts{
//			W: 128,
//			H: 64,
//		})
//		defer dev.Shutdown()
//
//		// A 32×24 section at row 16, column 64
//		s, _ := ssd1306.NewSection(ssd1306.Position{Row: 16, Column: 64}, 3, 32)
//		raster.DrawBorder(s.Buffer)
//		raster.DrawLine(s.Buffer, image.Pt(0, 0), image.Pt(31, 23))
//
//		// Send only this section to the display
//		dev.UpdateSection(s)
//	}
//
// # Sections
//
// A section is a caller owned 1-bit buffer (image1bit.VerticalLSB) plus the
// position of its top-left pixel. The row must be a multiple of 8 so the
// section maps onto whole controller pages. UpdateSection validates the
// window against the screen before emitting anything, then sends the column
// address, the page address and the buffer bytes.
//
// # Drawing Modes
//
// Besides sections, the driver supports two whole-screen modes:
//
//	pixels := make([]byte, 128*64/8) // 1024 bytes for 128×64
//	dev.Write(pixels)
//
//	dev.Draw(dev.Bounds(), myImage, image.Point{})
//
// Draw keeps a copy of the last frame and sends only the changed window.
//
// # Protocol State
//
// A Dev moves through Uninitialized, Initializing, Ready, AddressingSent,
// DataSent and Off. Operations other than Initialize and Shutdown need Ready
// and fail with ErrDeviceNotReady otherwise. Dev does no locking.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
