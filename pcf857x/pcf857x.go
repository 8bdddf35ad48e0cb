// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf857x provides a driver for the TI/NXP PCF857X I2C I/O Expander.
// These devices provide 8 pins (PCF8574) or 16 pins (PCF8575) of
// "quasi-bidirectional" input/output and are the usual transport of the
// LCD1602/LCD2004 character display backpacks.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// # Notes
//
// The chip has no registers and no direction control. Writing a byte sets the
// port latch: a low bit turns on an open drain to ground, a high bit is a weak
// pull-up that another device may pull low. Reading returns the levels seen
// on the pins. A pin used as an input must therefore be latched high, which is
// what In() does.
//
// Every pin operation is an I²C transaction. Writes that would not change the
// latch are skipped.
package pcf857x

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// Variant represents the actual chip model.
type Variant string

const (
	PCF8574 Variant = "PCF8574"
	PCF8575 Variant = "PCF8575"

	DefaultAddress uint16 = 0x20
)

var (
	ErrNotImplemented = errors.New("pcf857x: not implemented")
)

// Dev is representation of a PCF857x device.
type Dev struct {
	// The pins exposed by the device. For PCF8574, this will be 8 pins, and
	// 16 pins for the PCF8575
	Pins []gpio.PinIO

	chip  Variant
	width int
	d     *i2c.Dev

	mu sync.Mutex
	// latch is the last value written to the port, valid once latched is set.
	latch   uint16
	latched bool
	// inputs has a bit set for each pin last configured with In().
	inputs uint16
}

// New creates a new PCF857x io expander and returns it. chip should be one of
// the Variant constants above. No I²C transaction happens until a pin is
// used.
func New(bus i2c.Bus, address uint16, chip Variant) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: bus, Addr: address}, chip: chip}
	switch chip {
	case PCF8574:
		dev.width = 8
	case PCF8575:
		dev.width = 16
	default:
		return nil, fmt.Errorf("pcf857x: unknown variant %q", chip)
	}
	dev.Pins = make([]gpio.PinIO, dev.width)
	for i := range dev.width {
		p := &pcfPin{dev: dev, number: i, name: fmt.Sprintf("%s_GPIO%d", dev, i)}
		dev.Pins[i] = p
		_ = gpioreg.Register(p)
	}
	return dev, nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.chip, dev.d.Addr)
}

// Halt removes the pins from gpioreg. The port is left as is.
func (dev *Dev) Halt() error {
	for _, p := range dev.Pins {
		_ = gpioreg.Unregister(p.Name())
	}
	return nil
}

// set changes the latch bits selected by mask to value.
func (dev *Dev) set(value, mask uint16) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	next := dev.latch&^mask | value&mask
	if dev.latched && next == dev.latch {
		return nil
	}
	w := make([]byte, dev.width/8)
	for i := range w {
		w[i] = byte(next >> (8 * i))
	}
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("pcf857x: %w", err)
	}
	dev.latch = next
	dev.latched = true
	return nil
}

// get returns the levels currently present on the port.
func (dev *Dev) get() (uint16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	r := make([]byte, dev.width/8)
	if err := dev.d.Tx(nil, r); err != nil {
		return 0, fmt.Errorf("pcf857x: %w", err)
	}
	var v uint16
	for i, b := range r {
		v |= uint16(b) << (8 * i)
	}
	return v, nil
}

func (dev *Dev) setInput(mask uint16, in bool) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if in {
		dev.inputs |= mask
	} else {
		dev.inputs &^= mask
	}
}

func (dev *Dev) isInput(mask uint16) bool {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.inputs&mask != 0
}

var _ conn.Resource = &Dev{}
