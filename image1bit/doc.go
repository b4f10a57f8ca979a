// Package image1bit provides a 1-bit monochrome image format for the SSD1306 display controller.
//
// The SSD1306 addresses its memory in pages: horizontal bands 8 pixels tall.
// Each byte holds one column of a page, bit 0 being the topmost pixel of the band.
// Bytes are stored page by page, column by column, which is the order the
// controller consumes them in horizontal addressing mode.
//
// Memory layout example for a 3 pixel wide, 1 page tall image:
//
//	Column:  0     1     2
//	Byte:    0x01  0x80  0x81
//	         (0x01 = only row 0 lit)
//	         (0x80 = only row 7 lit)
//	         (0x81 = rows 0 and 7 lit)
//
// This package provides:
//
// - Bit: A color type representing a lit or unlit pixel
// - BitModel: A color model for converting standard Go colors to Bit
// - VerticalLSB: An image.Image implementation matching the SSD1306 page layout
//
// Example usage:
//
//	// Create a 128x16 image (2 pages)
//	img, _ := image1bit.NewVerticalLSB(2, 128)
//
//	// Light a pixel, failing loudly when out of range
//	if err := img.SetPixel(10, 12, true); err != nil {
//		return err
//	}
//
//	// Use with standard Go image operations (clipped silently)
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
