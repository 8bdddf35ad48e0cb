// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	for _, tc := range []struct {
		name string
		got  byte
		want byte
	}{
		{"function 8-bit 2-line", FunctionSet{EightBit: true, TwoLine: true}.Encode(), 0x38},
		{"function 4-bit 2-line", FunctionSet{TwoLine: true}.Encode(), 0x28},
		{"function 4-bit 1-line 5x10", FunctionSet{LargeFont: true}.Encode(), 0x24},
		{"entry increment", EntryMode{Increment: true}.Encode(), 0x06},
		{"entry decrement shift", EntryMode{ShiftDisplay: true}.Encode(), 0x05},
		{"display on", DisplayControl{Display: true}.Encode(), 0x0c},
		{"display all", DisplayControl{Display: true, Cursor: true, Blink: true}.Encode(), 0x0f},
		{"display off", DisplayControl{}.Encode(), 0x08},
		{"shift cursor left", CursorShift{}.Encode(), 0x10},
		{"shift display right", CursorShift{Display: true, Right: true}.Encode(), 0x1c},
	} {
		if tc.got != tc.want {
			t.Errorf("%s: 0x%02x, want 0x%02x", tc.name, tc.got, tc.want)
		}
	}
}

func TestDecode(t *testing.T) {
	// The don't care bits are ignored.
	f, err := DecodeFunctionSet(0x3b)
	if err != nil || f != (FunctionSet{EightBit: true, TwoLine: true}) {
		t.Errorf("DecodeFunctionSet(0x3b) = %+v, %v", f, err)
	}
	e, err := DecodeEntryMode(0x05)
	if err != nil || e != (EntryMode{ShiftDisplay: true}) {
		t.Errorf("DecodeEntryMode(0x05) = %+v, %v", e, err)
	}
	d, err := DecodeDisplayControl(0x0e)
	if err != nil || d != (DisplayControl{Display: true, Cursor: true}) {
		t.Errorf("DecodeDisplayControl(0x0e) = %+v, %v", d, err)
	}
	s, err := DecodeCursorShift(0x1b)
	if err != nil || s != (CursorShift{Display: true}) {
		t.Errorf("DecodeCursorShift(0x1b) = %+v, %v", s, err)
	}
}

func TestDecodeSelector(t *testing.T) {
	decoders := map[string]func(byte) error{
		"function": func(b byte) error {
			_, err := DecodeFunctionSet(b)
			return err
		},
		"entry": func(b byte) error {
			_, err := DecodeEntryMode(b)
			return err
		},
		"display": func(b byte) error {
			_, err := DecodeDisplayControl(b)
			return err
		},
		"shift": func(b byte) error {
			_, err := DecodeCursorShift(b)
			return err
		},
	}
	valid := map[string]byte{"function": 0x20, "entry": 0x04, "display": 0x08, "shift": 0x10}
	for name, decode := range decoders {
		for _, b := range []byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80} {
			err := decode(b)
			if b == valid[name] {
				if err != nil {
					t.Errorf("%s: 0x%02x: %v", name, b, err)
				}
				continue
			}
			if !errors.Is(err, ErrSelector) {
				t.Errorf("%s: 0x%02x = %v, want ErrSelector", name, b, err)
			}
		}
	}
}

func TestDecodeStatus(t *testing.T) {
	s := DecodeStatus(0xc5)
	if s != (Status{Busy: true, Address: 0x45}) {
		t.Errorf("DecodeStatus(0xc5) = %+v", s)
	}
	if got := s.String(); got != "Status{Busy: true, AC: 0x45}" {
		t.Errorf("String() = %q", got)
	}
	if s := DecodeStatus(0x7f); s.Busy || s.Address != 0x7f {
		t.Errorf("DecodeStatus(0x7f) = %+v", s)
	}
}

func TestDefaultConfig(t *testing.T) {
	c := defaultConfig()
	if f, e, d := c.Function.Encode(), c.Entry.Encode(), c.Control.Encode(); f != 0x38 || e != 0x06 || d != 0x0c {
		t.Errorf("defaults 0x%02x 0x%02x 0x%02x", f, e, d)
	}
}
