package ssd1306

import (
	"bytes"
	"testing"
)

func TestCommandBytes(t *testing.T) {
	tests := []struct {
		cmd  Command
		want []byte
	}{
		{DisplayOff(), []byte{0xAE}},
		{DisplayOn(), []byte{0xAF}},
		{AddressingMode(HorizontalAddressing), []byte{0x20, 0x00}},
		{AddressingMode(PageAddressing), []byte{0x20, 0x02}},
		{MultiplexRatio(31), []byte{0xA8, 0x1F}},
		{DisplayOffset(0), []byte{0xD3, 0x00}},
		{StartLine(0), []byte{0x40}},
		{StartLine(63), []byte{0x7F}},
		{SegmentRemap(false), []byte{0xA0}},
		{SegmentRemap(true), []byte{0xA1}},
		{ScanDirection(false), []byte{0xC0}},
		{ScanDirection(true), []byte{0xC8}},
		{ComPins(0x12), []byte{0xDA, 0x12}},
		{Contrast(0xCF), []byte{0x81, 0xCF}},
		{EntireDisplayOn(false), []byte{0xA4}},
		{EntireDisplayOn(true), []byte{0xA5}},
		{DisplayPolarity(false), []byte{0xA6}},
		{DisplayPolarity(true), []byte{0xA7}},
		{Clock(0x80), []byte{0xD5, 0x80}},
		{PrechargePeriod(0xF1), []byte{0xD9, 0xF1}},
		{DeselectLevel(0x20), []byte{0xDB, 0x20}},
		{ChargePump(true), []byte{0x8D, 0x14}},
		{ChargePump(false), []byte{0x8D, 0x10}},
		{ActivateScroll(), []byte{0x2F}},
		{DeactivateScroll(), []byte{0x2E}},
		{HorizontalScroll(false, 1, 0x07, 3), []byte{0x26, 0x00, 0x01, 0x07, 0x03, 0x00, 0xFF}},
		{HorizontalScroll(true, 0, 0x00, 7), []byte{0x27, 0x00, 0x00, 0x00, 0x07, 0x00, 0xFF}},
		{ColumnAddress(0, 127), []byte{0x21, 0x00, 0x7F}},
		{PageAddress(2, 4), []byte{0x22, 0x02, 0x04}},
		{Command{Kind: CommandKind(200)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			if got := tt.cmd.Bytes(); !bytes.Equal(got, tt.want) {
				t.Errorf("Bytes() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{DisplayOff(), "DisplayOff"},
		{ColumnAddress(0, 127), "ColumnAddress(0x00, 0x7f)"},
		{Contrast(0x7F), "Contrast(0x7f)"},
		{Command{Kind: CommandKind(99)}, "CommandKind(99)"},
	}

	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestInitSequenceInvariants(t *testing.T) {
	cmds := initSequence(&Opts{W: 128, H: 32, Contrast: 0x8F})

	index := func(k CommandKind) int {
		for i, c := range cmds {
			if c.Kind == k {
				return i
			}
		}
		return -1
	}

	if cmds[0].Kind != CmdDisplayOff {
		t.Errorf("first command = %v, want DisplayOff", cmds[0])
	}
	if index(CmdChargePump) > index(CmdDisplayOn) {
		t.Error("charge pump must be enabled before the display is turned on")
	}
	if index(CmdAddressingMode) > index(CmdDisplayOn) {
		t.Error("addressing mode must be set before the display is turned on")
	}
	if got := cmds[index(CmdContrast)].Args[0]; got != 0x8F {
		t.Errorf("contrast = 0x%02X, want 0x8F", got)
	}
	if got := cmds[index(CmdMultiplexRatio)].Args[0]; got != 31 {
		t.Errorf("multiplex = %d, want 31", got)
	}
	if last := cmds[len(cmds)-1]; last.Kind != CmdStartLine {
		t.Errorf("last command = %v, want StartLine", last)
	}
}
