package ssd1306

import (
	"fmt"
	"strings"
)

// CommandKind enumerates the SSD1306 commands used by this driver.
type CommandKind uint8

const (
	CmdDisplayOff CommandKind = iota
	CmdDisplayOn
	CmdAddressingMode
	CmdMultiplexRatio
	CmdDisplayOffset
	CmdStartLine
	CmdSegmentRemap
	CmdScanDirection
	CmdComPins
	CmdContrast
	CmdEntireDisplayOn
	CmdDisplayPolarity
	CmdClock
	CmdPrechargePeriod
	CmdDeselectLevel
	CmdChargePump
	CmdActivateScroll
	CmdDeactivateScroll
	CmdHorizontalScroll
	CmdColumnAddress
	CmdPageAddress
)

var commandNames = [...]string{
	CmdDisplayOff:       "DisplayOff",
	CmdDisplayOn:        "DisplayOn",
	CmdAddressingMode:   "AddressingMode",
	CmdMultiplexRatio:   "MultiplexRatio",
	CmdDisplayOffset:    "DisplayOffset",
	CmdStartLine:        "StartLine",
	CmdSegmentRemap:     "SegmentRemap",
	CmdScanDirection:    "ScanDirection",
	CmdComPins:          "ComPins",
	CmdContrast:         "Contrast",
	CmdEntireDisplayOn:  "EntireDisplayOn",
	CmdDisplayPolarity:  "DisplayPolarity",
	CmdClock:            "Clock",
	CmdPrechargePeriod:  "PrechargePeriod",
	CmdDeselectLevel:    "DeselectLevel",
	CmdChargePump:       "ChargePump",
	CmdActivateScroll:   "ActivateScroll",
	CmdDeactivateScroll: "DeactivateScroll",
	CmdHorizontalScroll: "HorizontalScroll",
	CmdColumnAddress:    "ColumnAddress",
	CmdPageAddress:      "PageAddress",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return fmt.Sprintf("CommandKind(%d)", uint8(k))
}

// Addressing modes accepted by AddressingMode.
const (
	HorizontalAddressing byte = 0x00
	VerticalAddressing   byte = 0x01
	PageAddressing       byte = 0x02
)

// Command is one controller command with its parameters.
//
// Commands whose parameter is folded into the opcode (start line, segment
// remap, scan direction, entire display on, polarity) still carry it in Args.
type Command struct {
	Kind CommandKind
	Args []byte
}

// Bytes returns the command encoded as sent on the wire.
func (c Command) Bytes() []byte {
	switch c.Kind {
	case CmdDisplayOff:
		return []byte{0xAE}
	case CmdDisplayOn:
		return []byte{0xAF}
	case CmdActivateScroll:
		return []byte{0x2F}
	case CmdDeactivateScroll:
		return []byte{0x2E}
	case CmdStartLine:
		return []byte{0x40 | c.arg(0)&0x3F}
	case CmdSegmentRemap:
		return []byte{0xA0 | c.arg(0)&0x01}
	case CmdScanDirection:
		return []byte{0xC0 | (c.arg(0)&0x01)<<3}
	case CmdEntireDisplayOn:
		return []byte{0xA4 | c.arg(0)&0x01}
	case CmdDisplayPolarity:
		return []byte{0xA6 | c.arg(0)&0x01}
	case CmdHorizontalScroll:
		// Direction is folded into the opcode, the rest are parameters.
		return []byte{0x26 | c.arg(0)&0x01, 0x00, c.arg(1), c.arg(2), c.arg(3), 0x00, 0xFF}
	}
	op, ok := opcodes[c.Kind]
	if !ok {
		return nil
	}
	return append([]byte{op}, c.Args...)
}

// opcodes lists the commands encoded as opcode followed by Args verbatim.
var opcodes = map[CommandKind]byte{
	CmdAddressingMode:  0x20,
	CmdColumnAddress:   0x21,
	CmdPageAddress:     0x22,
	CmdContrast:        0x81,
	CmdChargePump:      0x8D,
	CmdMultiplexRatio:  0xA8,
	CmdDisplayOffset:   0xD3,
	CmdClock:           0xD5,
	CmdPrechargePeriod: 0xD9,
	CmdComPins:         0xDA,
	CmdDeselectLevel:   0xDB,
}

func (c Command) arg(i int) byte {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return 0
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Kind.String()
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprintf("%#02x", a)
	}
	return c.Kind.String() + "(" + strings.Join(args, ", ") + ")"
}

func boolArg(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// DisplayOff puts the panel to sleep.
func DisplayOff() Command { return Command{Kind: CmdDisplayOff} }

// DisplayOn wakes the panel up.
func DisplayOn() Command { return Command{Kind: CmdDisplayOn} }

// AddressingMode selects how the RAM pointer advances after each data byte.
func AddressingMode(mode byte) Command {
	return Command{Kind: CmdAddressingMode, Args: []byte{mode}}
}

// MultiplexRatio sets the number of active COM lines minus one.
func MultiplexRatio(ratio byte) Command {
	return Command{Kind: CmdMultiplexRatio, Args: []byte{ratio}}
}

// DisplayOffset sets the vertical COM shift.
func DisplayOffset(offset byte) Command {
	return Command{Kind: CmdDisplayOffset, Args: []byte{offset}}
}

// StartLine sets the RAM row mapped to the top of the panel (0-63).
func StartLine(line byte) Command {
	return Command{Kind: CmdStartLine, Args: []byte{line}}
}

// SegmentRemap maps column 127 to SEG0 when remapped is true.
func SegmentRemap(remapped bool) Command {
	return Command{Kind: CmdSegmentRemap, Args: []byte{boolArg(remapped)}}
}

// ScanDirection scans COM lines from COM[N-1] to COM0 when remapped is true.
func ScanDirection(remapped bool) Command {
	return Command{Kind: CmdScanDirection, Args: []byte{boolArg(remapped)}}
}

// ComPins sets the COM pins hardware configuration.
func ComPins(config byte) Command {
	return Command{Kind: CmdComPins, Args: []byte{config}}
}

// Contrast sets the panel contrast (0-255).
func Contrast(level byte) Command {
	return Command{Kind: CmdContrast, Args: []byte{level}}
}

// EntireDisplayOn lights every pixel regardless of RAM when on is true.
func EntireDisplayOn(on bool) Command {
	return Command{Kind: CmdEntireDisplayOn, Args: []byte{boolArg(on)}}
}

// DisplayPolarity selects inverse (true) or normal (false) display.
func DisplayPolarity(inverse bool) Command {
	return Command{Kind: CmdDisplayPolarity, Args: []byte{boolArg(inverse)}}
}

// Clock sets the display clock divide ratio and oscillator frequency.
func Clock(config byte) Command {
	return Command{Kind: CmdClock, Args: []byte{config}}
}

// PrechargePeriod sets the phase 1 and phase 2 pre-charge periods.
func PrechargePeriod(period byte) Command {
	return Command{Kind: CmdPrechargePeriod, Args: []byte{period}}
}

// DeselectLevel sets the VCOMH deselect level.
func DeselectLevel(level byte) Command {
	return Command{Kind: CmdDeselectLevel, Args: []byte{level}}
}

// ChargePump enables or disables the internal charge pump.
func ChargePump(enabled bool) Command {
	v := byte(0x10)
	if enabled {
		v = 0x14
	}
	return Command{Kind: CmdChargePump, Args: []byte{v}}
}

// ActivateScroll starts the configured scroll.
func ActivateScroll() Command { return Command{Kind: CmdActivateScroll} }

// DeactivateScroll stops scrolling.
func DeactivateScroll() Command { return Command{Kind: CmdDeactivateScroll} }

// HorizontalScroll configures a continuous horizontal scroll between two pages.
func HorizontalScroll(left bool, startPage, interval, endPage byte) Command {
	return Command{Kind: CmdHorizontalScroll, Args: []byte{boolArg(left), startPage, interval, endPage}}
}

// ColumnAddress sets the inclusive column window for subsequent data.
func ColumnAddress(start, end byte) Command {
	return Command{Kind: CmdColumnAddress, Args: []byte{start, end}}
}

// PageAddress sets the inclusive page window for subsequent data.
func PageAddress(start, end byte) Command {
	return Command{Kind: CmdPageAddress, Args: []byte{start, end}}
}

// initSequence returns the power-up configuration. The order matters:
// addressing mode and multiplex must be set before geometry dependent
// commands, and the charge pump must be on before the display is.
func initSequence(o *Opts) []Command {
	comPins := byte(0x12) // Alternative COM pin configuration
	if o.H == 32 || o.H == 16 {
		comPins = 0x02 // Sequential COM pin configuration
	}
	return []Command{
		DisplayOff(),
		AddressingMode(HorizontalAddressing),
		MultiplexRatio(byte(o.H - 1)),
		DisplayOffset(0x00),
		StartLine(0),
		SegmentRemap(!o.Rotated),
		ScanDirection(!o.Rotated),
		ComPins(comPins),
		Contrast(o.Contrast),
		EntireDisplayOn(false),
		DisplayPolarity(false),
		Clock(0x80),
		PrechargePeriod(0xF1),
		DeselectLevel(0x20), // ~0.77 x Vcc
		ChargePump(true),
		DisplayOn(),
		DeactivateScroll(),
		StartLine(0),
	}
}
