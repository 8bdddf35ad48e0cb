// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"testing"

	"github.com/GermanBionicSystems/charlcd/hd44780/hd44780test"
	"periph.io/x/conn/v3/gpio"
)

func TestByteRoundTrip(t *testing.T) {
	for _, eightBit := range []bool{false, true} {
		dev, c, _ := newSim(t, eightBit, 2, 16)
		for v := range 256 {
			b := byte(v)
			if err := dev.SetCursor(1, 1); err != nil {
				t.Fatal(err)
			}
			if _, err := dev.Write([]byte{b}); err != nil {
				t.Fatal(err)
			}
			if got := c.DDRAM(0); got != b {
				t.Fatalf("eightBit=%t: wrote 0x%02x, controller got 0x%02x", eightBit, b, got)
			}
			if err := dev.SetCursor(1, 1); err != nil {
				t.Fatal(err)
			}
			got, err := dev.ReadData()
			if err != nil {
				t.Fatal(err)
			}
			if got != b {
				t.Fatalf("eightBit=%t: read 0x%02x, want 0x%02x", eightBit, got, b)
			}
		}
	}
}

func TestWriteNibbles(t *testing.T) {
	dev, c, _ := newSim(t, false, 2, 16)
	if _, err := dev.WriteString("A"); err != nil {
		t.Fatal(err)
	}
	var got []hd44780test.Cycle
	for _, cy := range c.Cycles() {
		if !cy.Read {
			got = append(got, cy)
		}
	}
	want := []hd44780test.Cycle{{RS: gpio.High, Value: 0x40}, {RS: gpio.High, Value: 0x10}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("cycles %+v, want %+v", got, want)
	}
}

func TestDataPinsLeftDriven(t *testing.T) {
	dev, c, _ := newSim(t, false, 2, 16)
	if _, err := dev.ReadStatus(); err != nil {
		t.Fatal(err)
	}
	for i := 4; i < 8; i++ {
		if !c.DB[i].IsOutput() {
			t.Errorf("DB%d left as input", i)
		}
	}
}
