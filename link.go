package ssd1306

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultAddr is the usual I²C address of SSD1306 modules (SA0 low).
const DefaultAddr uint16 = 0x3C

// Link carries commands and pixel data to the controller.
//
// Implementations block until the transfer completes and report transport
// failures as errors; Dev never retries.
type Link interface {
	SendCommand(cmd Command) error
	SendData(data []byte) error
}

// I2CLink talks to the controller over I²C.
//
// Every transfer starts with a control byte: 0x00 for a command stream,
// 0x40 for display RAM data.
type I2CLink struct {
	c conn.Conn
}

// NewI2CLink returns a link to the controller at addr on bus b.
func NewI2CLink(b i2c.Bus, addr uint16) *I2CLink {
	return &I2CLink{c: &i2c.Dev{Bus: b, Addr: addr}}
}

// SendCommand implements Link.
func (l *I2CLink) SendCommand(cmd Command) error {
	return l.c.Tx(append([]byte{0x00}, cmd.Bytes()...), nil)
}

// SendData implements Link.
func (l *I2CLink) SendData(data []byte) error {
	return l.c.Tx(append([]byte{0x40}, data...), nil)
}

func (l *I2CLink) String() string {
	return fmt.Sprintf("i2c(%s)", l.c)
}

// SPILink talks to the controller over 4-wire SPI, the D/C pin selecting
// between command (low) and data (high) bytes.
type SPILink struct {
	c  conn.Conn
	dc gpio.PinOut
}

// NewSPILink connects to p at 10MHz, Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
func NewSPILink(p spi.Port, dc gpio.PinOut) (*SPILink, error) {
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}
	return &SPILink{c: c, dc: dc}, nil
}

// SendCommand implements Link.
func (l *SPILink) SendCommand(cmd Command) error {
	if err := l.dc.Out(gpio.Low); err != nil {
		return err
	}
	return l.c.Tx(cmd.Bytes(), nil)
}

// SendData implements Link.
func (l *SPILink) SendData(data []byte) error {
	if err := l.dc.Out(gpio.High); err != nil {
		return err
	}
	return l.c.Tx(data, nil)
}

func (l *SPILink) String() string {
	return fmt.Sprintf("spi(%s)", l.c)
}
