// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3/display"
)

// AutoScroll shifts the display instead of the cursor as characters are
// written.
func (dev *Dev) AutoScroll(enabled bool) error {
	if err := dev.ready(); err != nil {
		return err
	}
	e := dev.cfg.Entry
	e.ShiftDisplay = enabled
	return dev.setEntry(e)
}

// Return the number of columns the display supports
func (dev *Dev) Cols() int {
	return dev.cols
}

// Return the number of rows the display supports.
func (dev *Dev) Rows() int {
	return dev.rows
}

// Return the min column position.
func (dev *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (dev *Dev) MinRow() int {
	return 1
}

// Set the cursor mode. You can pass multiple arguments.
// Cursor(CursorUnderline, CursorBlink)
//
// The controller has an underline cursor and a blinking block, CursorBlock
// and CursorBlink both select the latter.
func (dev *Dev) Cursor(modes ...display.CursorMode) error {
	if err := dev.ready(); err != nil {
		return err
	}
	c := dev.cfg.Control
	c.Cursor = false
	c.Blink = false
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			c.Cursor = false
			c.Blink = false
		case display.CursorUnderline:
			c.Cursor = true
		case display.CursorBlink, display.CursorBlock:
			c.Blink = true
		default:
			return fmt.Errorf("hd44780: cursor mode %d: %w", mode, display.ErrInvalidCommand)
		}
	}
	return dev.setControl(c)
}

// Move the cursor forward or backward.
func (dev *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Forward:
		return dev.ShiftCursor(true)
	case display.Backward:
		return dev.ShiftCursor(false)
	default:
		return fmt.Errorf("hd44780: %w", display.ErrNotImplemented)
	}
}

// Move the cursor to arbitrary position.
func (dev *Dev) MoveTo(row, col int) error {
	return dev.SetCursor(row, col)
}

// Write writes p as character codes at the cursor position. Unlike
// DisplayText, it doesn't check the row boundary, the controller wraps the
// address counter on its own.
func (dev *Dev) Write(p []byte) (n int, err error) {
	if err = dev.ready(); err != nil {
		return
	}
	for _, c := range p {
		if err = dev.writeData(c); err != nil {
			return
		}
		n++
	}
	return
}

// Write a string output to the display.
func (dev *Dev) WriteString(text string) (int, error) {
	return dev.Write([]byte(text))
}

// Turn the display's backlight on or off. You must supply a backlight control
// pin when creating the display to use this.
func (dev *Dev) Backlight(intensity display.Intensity) error {
	if dev.backlight == nil {
		return fmt.Errorf("hd44780: no backlight pin: %w", display.ErrNotImplemented)
	}
	return dev.backlight.Backlight(intensity)
}

var _ display.TextDisplay = &Dev{}
var _ display.DisplayBacklight = &Dev{}
