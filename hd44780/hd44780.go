// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls the Hitachi LCD display chipset HD-44780 over its
// parallel bus, in 4 or 8 bit mode, with the R/W line wired so that the busy
// flag paces every transfer instead of fixed delays.
//
// A Dev is not safe for concurrent use. It owns the bus pins and the mirror
// of the controller registers, and a single goroutine must drive it.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

// Pins is the wiring of the controller to the host.
//
// A nil data pin is not connected. Leaving any of DB0-DB3 unconnected selects
// the 4-bit interface, where only DB4-DB7 carry data.
type Pins struct {
	RS gpio.PinOut // Register select: instruction when low, data when high.
	RW gpio.PinOut // Read when high, write when low.
	E  gpio.PinOut // Enable strobe.
	DB [8]gpio.PinIO

	// Backlight is optional.
	Backlight gpio.PinOut
}

// eightBit reports whether all data pins are connected.
func (p *Pins) eightBit() bool {
	for _, db := range p.DB[:4] {
		if db == nil {
			return false
		}
	}
	return true
}

// Opts holds the optional settings of a Dev.
type Opts struct {
	// MaxRows and MaxCols bound the geometry accepted by Reset. They default
	// to 4 and 16. The controller addresses at most 4 rows and 40 columns.
	MaxRows int
	MaxCols int
	// Clock defaults to the host clock.
	Clock Clock
}

const (
	defaultMaxRows = 4
	defaultMaxCols = 16
	ddramRows      = 4
	ddramCols      = 40
)

// rowAddress is the DDRAM address of the first column of each row. It is
// fixed by the controller, rows 3 and 4 are continuations of rows 1 and 2.
var rowAddress = [ddramRows]byte{0x00, 0x40, 0x14, 0x54}

// Reset sequence delays.
const (
	delayPowerOn  = 50 * time.Millisecond
	delayInit1    = 5 * time.Millisecond
	delayInit2    = 150 * time.Microsecond
	delayComplete = 2 * time.Millisecond
)

// Dev is an HD44780 driven over GPIO pins.
//
// Implements periph.io/x/conn/v3/display.TextDisplay and
// display.DisplayBacklight.
type Dev struct {
	pins    Pins
	clock   Clock
	maxRows int
	maxCols int

	cfg         Config
	rows        int
	cols        int
	initialized bool
	backlight   display.DisplayBacklight
}

// New returns a Dev for the given wiring. It doesn't touch the pins, Reset
// must be called before anything else.
func New(pins *Pins, opts *Opts) (*Dev, error) {
	if pins == nil || pins.RS == nil || pins.RW == nil || pins.E == nil {
		return nil, fmt.Errorf("%w: RS, R/W and E are required", ErrPins)
	}
	for i := 4; i < 8; i++ {
		if pins.DB[i] == nil {
			return nil, fmt.Errorf("%w: DB%d is required", ErrPins, i)
		}
	}
	if opts == nil {
		opts = &Opts{}
	}
	dev := &Dev{
		pins:    *pins,
		clock:   opts.Clock,
		maxRows: opts.MaxRows,
		maxCols: opts.MaxCols,
		cfg:     defaultConfig(),
	}
	if dev.clock == nil {
		dev.clock = hostClock{}
	}
	if dev.maxRows == 0 {
		dev.maxRows = defaultMaxRows
	}
	if dev.maxCols == 0 {
		dev.maxCols = defaultMaxCols
	}
	if dev.maxRows < 1 || dev.maxRows > ddramRows || dev.maxCols < 1 || dev.maxCols > ddramCols {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrGeometry, dev.maxRows, dev.maxCols, ddramRows, ddramCols)
	}
	if pins.Backlight != nil {
		dev.backlight = NewBacklight(pins.Backlight)
	}
	return dev, nil
}

// NewHD44780 returns a Dev that has been through the power on reset sequence
// for a rows x cols display, with the backlight on if there is one.
func NewHD44780(pins *Pins, rows, cols int) (*Dev, error) {
	dev, err := New(pins, &Opts{MaxRows: rows, MaxCols: cols})
	if err != nil {
		return nil, err
	}
	return dev, dev.start(rows, cols)
}

func (dev *Dev) start(rows, cols int) error {
	if err := dev.Reset(rows, cols); err != nil {
		return err
	}
	if dev.backlight != nil {
		return dev.backlight.Backlight(0xff)
	}
	return nil
}

// Reset runs the initialization by instruction sequence of the datasheet.
// It forces the controller into the interface width matching the wiring
// whatever state it was in, then pushes the default configuration: display
// on, cursor off, cleared, left to right entry.
//
// A single row display is put in 1-line mode with the 5x10 font.
//
// Reset may be run again at any time to resynchronize with the controller.
// If it fails, the Dev stays unusable until a Reset succeeds.
func (dev *Dev) Reset(rows, cols int) error {
	dev.initialized = false
	if err := dev.pins.RS.Out(gpio.Low); err != nil {
		return busErr("register select", err)
	}
	if err := dev.pins.E.Out(gpio.Low); err != nil {
		return busErr("enable", err)
	}
	if err := dev.pins.RW.Out(gpio.Low); err != nil {
		return busErr("r/w", err)
	}
	if err := dev.driveData(); err != nil {
		return err
	}
	if rows < 1 || rows > dev.maxRows || cols < 1 || cols > dev.maxCols {
		return fmt.Errorf("%w: %dx%d display, at most %dx%d supported", ErrGeometry, rows, cols, dev.maxRows, dev.maxCols)
	}
	dev.rows, dev.cols = rows, cols

	cfg := defaultConfig()
	if rows == 1 {
		cfg.Function.TwoLine = false
		cfg.Function.LargeFont = true
	}
	dev.cfg = cfg

	// Until the controller is known to be in 8-bit mode, each write is a
	// single enable cycle. On a 4-bit bus DB0-DB3 float and read as low.
	dev.clock.Sleep(delayPowerOn)
	for _, d := range []time.Duration{delayInit1, delayInit2, 0} {
		if err := dev.writeRaw(dev.cfg.Function.Encode()); err != nil {
			return err
		}
		dev.clock.Sleep(d)
	}
	if !dev.pins.eightBit() {
		dev.cfg.Function.EightBit = false
		if err := dev.writeRaw(dev.cfg.Function.Encode()); err != nil {
			return err
		}
	}

	if err := dev.setFunction(dev.cfg.Function); err != nil {
		return err
	}
	if err := dev.setControl(dev.cfg.Control); err != nil {
		return err
	}
	if err := dev.writeInstruction(cmdClear); err != nil {
		return err
	}
	if err := dev.setEntry(dev.cfg.Entry); err != nil {
		return err
	}
	dev.clock.Sleep(delayComplete)
	dev.initialized = true
	return nil
}

// Config returns the controller configuration as last written.
func (dev *Dev) Config() Config {
	return dev.cfg
}

// BusWidth returns 4 or 8.
func (dev *Dev) BusWidth() int {
	if dev.cfg.Function.EightBit {
		return 8
	}
	return 4
}

// Return info about the display.
func (dev *Dev) String() string {
	return fmt.Sprintf("HD44780{%d-bit, Rows: %d, Cols: %d}", dev.BusWidth(), dev.rows, dev.cols)
}

// Halt clears the display, turns it and the backlight off.
func (dev *Dev) Halt() error {
	if !dev.initialized {
		return nil
	}
	if err := dev.Clear(); err != nil {
		return err
	}
	if err := dev.Display(false); err != nil {
		return err
	}
	if dev.backlight != nil {
		return dev.backlight.Backlight(0)
	}
	return nil
}

var _ conn.Resource = &Dev{}
