// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "fmt"

// Instruction selectors. The selector is the highest set bit of an
// instruction byte and identifies which register the low bits belong to.
const (
	cmdClear        byte = 0x01
	cmdHome         byte = 0x02
	cmdEntryMode    byte = 0x04
	cmdDisplay      byte = 0x08
	cmdShift        byte = 0x10
	cmdFunctionSet  byte = 0x20
	cmdSetCGRAMAddr byte = 0x40
	cmdSetDDRAMAddr byte = 0x80

	cgramAddrMask byte = 0x3f
	ddramAddrMask byte = 0x7f
)

// FunctionSet is the interface width, line count and font register.
//
//	0 0 1 DL N F x x
type FunctionSet struct {
	EightBit  bool // DL: 8-bit bus when set, 4-bit otherwise.
	TwoLine   bool // N: 2-line display mode.
	LargeFont bool // F: 5x10 dots font, only honoured in 1-line mode.
}

// Encode returns the instruction byte for f.
func (f FunctionSet) Encode() byte {
	b := cmdFunctionSet
	if f.EightBit {
		b |= 0x10
	}
	if f.TwoLine {
		b |= 0x08
	}
	if f.LargeFont {
		b |= 0x04
	}
	return b
}

// DecodeFunctionSet parses a function set instruction byte. The two low
// "don't care" bits are ignored.
func DecodeFunctionSet(b byte) (FunctionSet, error) {
	if b&0xe0 != cmdFunctionSet {
		return FunctionSet{}, selectorErr("function set", b)
	}
	return FunctionSet{
		EightBit:  b&0x10 != 0,
		TwoLine:   b&0x08 != 0,
		LargeFont: b&0x04 != 0,
	}, nil
}

// EntryMode controls what happens to the address counter, and optionally the
// display, after each data write.
//
//	0 0 0 0 0 1 I/D S
type EntryMode struct {
	Increment    bool // I/D: move right after a write, left otherwise.
	ShiftDisplay bool // S: shift the entire display instead of the cursor.
}

// Encode returns the instruction byte for e.
func (e EntryMode) Encode() byte {
	b := cmdEntryMode
	if e.Increment {
		b |= 0x02
	}
	if e.ShiftDisplay {
		b |= 0x01
	}
	return b
}

// DecodeEntryMode parses an entry mode instruction byte.
func DecodeEntryMode(b byte) (EntryMode, error) {
	if b&0xfc != cmdEntryMode {
		return EntryMode{}, selectorErr("entry mode", b)
	}
	return EntryMode{Increment: b&0x02 != 0, ShiftDisplay: b&0x01 != 0}, nil
}

// DisplayControl turns the display, the underline cursor and the blinking
// block on or off.
//
//	0 0 0 0 1 D C B
type DisplayControl struct {
	Display bool
	Cursor  bool
	Blink   bool
}

// Encode returns the instruction byte for d.
func (d DisplayControl) Encode() byte {
	b := cmdDisplay
	if d.Display {
		b |= 0x04
	}
	if d.Cursor {
		b |= 0x02
	}
	if d.Blink {
		b |= 0x01
	}
	return b
}

// DecodeDisplayControl parses a display on/off control instruction byte.
func DecodeDisplayControl(b byte) (DisplayControl, error) {
	if b&0xf8 != cmdDisplay {
		return DisplayControl{}, selectorErr("display control", b)
	}
	return DisplayControl{
		Display: b&0x04 != 0,
		Cursor:  b&0x02 != 0,
		Blink:   b&0x01 != 0,
	}, nil
}

// CursorShift moves the cursor or shifts the whole display by one position
// without touching DDRAM.
//
//	0 0 0 1 S/C R/L x x
type CursorShift struct {
	Display bool // S/C: shift the display, otherwise move the cursor.
	Right   bool // R/L
}

// Encode returns the instruction byte for s.
func (s CursorShift) Encode() byte {
	b := cmdShift
	if s.Display {
		b |= 0x08
	}
	if s.Right {
		b |= 0x04
	}
	return b
}

// DecodeCursorShift parses a cursor or display shift instruction byte.
func DecodeCursorShift(b byte) (CursorShift, error) {
	if b&0xf0 != cmdShift {
		return CursorShift{}, selectorErr("cursor shift", b)
	}
	return CursorShift{Display: b&0x08 != 0, Right: b&0x04 != 0}, nil
}

// Status is the busy flag and address counter read back from the controller.
// It is never cached.
type Status struct {
	Busy    bool
	Address byte
}

// DecodeStatus splits a status byte into the busy flag (bit 7) and the 7-bit
// address counter.
func DecodeStatus(b byte) Status {
	return Status{Busy: b&0x80 != 0, Address: b & 0x7f}
}

func (s Status) String() string {
	return fmt.Sprintf("Status{Busy: %t, AC: 0x%02x}", s.Busy, s.Address)
}

// Config mirrors the controller's configuration registers as last
// acknowledged by a successful write.
type Config struct {
	Function FunctionSet
	Entry    EntryMode
	Control  DisplayControl
	Shift    CursorShift
}

// defaultConfig is the configuration pushed by Reset: 8-bit bus until the
// pin assignment says otherwise, two lines, small font, display on with no
// cursor, left to right entry.
func defaultConfig() Config {
	return Config{
		Function: FunctionSet{EightBit: true, TwoLine: true},
		Entry:    EntryMode{Increment: true},
		Control:  DisplayControl{Display: true},
		Shift:    CursorShift{Right: true},
	}
}

func selectorErr(register string, b byte) error {
	return fmt.Errorf("hd44780: 0x%02x is not a %s instruction: %w", b, register, ErrSelector)
}
