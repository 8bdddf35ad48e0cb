// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"github.com/GermanBionicSystems/charlcd/pcf857x"
	"periph.io/x/conn/v3/i2c"
)

const (
	// Name is the LCD pin name, and the integer value is the GPIO
	// number (not physical) of the PCF8574 I2C GPIO Expander.
	pcfRS        = 0
	pcfRW        = 1
	pcfEnable    = 2
	pcfBacklight = 3
	pcfD4        = 4
)

// NewPCF857xBackpack returns a display connected through a PCF8574 i2c
// backpack, reset and with the backlight on.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// These backpacks wire R/W, so the busy flag is read back through the
// expander and the display runs in 4-bit mode. opts may be nil; MaxRows and
// MaxCols default to rows and cols.
func NewPCF857xBackpack(bus i2c.Bus, address uint16, rows, cols int, opts *Opts) (*Dev, error) {
	pcf, err := pcf857x.New(bus, address, pcf857x.PCF8574)
	if err != nil {
		return nil, err
	}
	pins := &Pins{
		RS:        pcf.Pins[pcfRS],
		RW:        pcf.Pins[pcfRW],
		E:         pcf.Pins[pcfEnable],
		Backlight: pcf.Pins[pcfBacklight],
	}
	for i := range 4 {
		pins.DB[4+i] = pcf.Pins[pcfD4+i]
	}
	o := Opts{MaxRows: rows, MaxCols: cols}
	if opts != nil {
		o = *opts
		if o.MaxRows == 0 {
			o.MaxRows = rows
		}
		if o.MaxCols == 0 {
			o.MaxCols = cols
		}
	}
	dev, err := New(pins, &o)
	if err != nil {
		return nil, err
	}
	return dev, dev.start(rows, cols)
}
