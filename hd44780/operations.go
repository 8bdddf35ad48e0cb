// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"
	"strconv"
	"strings"
)

func (dev *Dev) ready() error {
	if !dev.initialized {
		return ErrNotInitialized
	}
	return nil
}

// Clear fills DDRAM with spaces, moves the cursor home and restores left to
// right entry.
func (dev *Dev) Clear() error {
	if err := dev.ready(); err != nil {
		return err
	}
	if err := dev.writeInstruction(cmdClear); err != nil {
		return err
	}
	dev.cfg.Entry.Increment = true
	return nil
}

// Home moves the cursor to the first position and undoes any display shift.
// DDRAM is left untouched.
func (dev *Dev) Home() error {
	if err := dev.ready(); err != nil {
		return err
	}
	return dev.writeInstruction(cmdHome)
}

// SetEntryMode sets the cursor direction and display shift applied after each
// character written.
func (dev *Dev) SetEntryMode(mode EntryMode) error {
	if err := dev.ready(); err != nil {
		return err
	}
	return dev.setEntry(mode)
}

// SetLineMode selects the 2-line or the 1-line display mode.
func (dev *Dev) SetLineMode(twoLine bool) error {
	if err := dev.ready(); err != nil {
		return err
	}
	f := dev.cfg.Function
	f.TwoLine = twoLine
	return dev.setFunction(f)
}

// SetFont selects the 5x10 dots font when large is set, 5x8 otherwise. The
// controller ignores the large font in 2-line mode.
func (dev *Dev) SetFont(large bool) error {
	if err := dev.ready(); err != nil {
		return err
	}
	f := dev.cfg.Function
	f.LargeFont = large
	return dev.setFunction(f)
}

// Turn the display on / off. DDRAM content is preserved.
func (dev *Dev) Display(on bool) error {
	if err := dev.ready(); err != nil {
		return err
	}
	c := dev.cfg.Control
	c.Display = on
	return dev.setControl(c)
}

// ShowCursor turns the underline cursor on or off.
func (dev *Dev) ShowCursor(on bool) error {
	if err := dev.ready(); err != nil {
		return err
	}
	c := dev.cfg.Control
	c.Cursor = on
	return dev.setControl(c)
}

// Blink turns the blinking block at the cursor position on or off.
func (dev *Dev) Blink(on bool) error {
	if err := dev.ready(); err != nil {
		return err
	}
	c := dev.cfg.Control
	c.Blink = on
	return dev.setControl(c)
}

// ShiftCursor moves the cursor one position left or right.
func (dev *Dev) ShiftCursor(right bool) error {
	if err := dev.ready(); err != nil {
		return err
	}
	return dev.setShift(CursorShift{Right: right})
}

// ShiftDisplay scrolls every row one position left or right. The cursor
// follows the text.
func (dev *Dev) ShiftDisplay(right bool) error {
	if err := dev.ready(); err != nil {
		return err
	}
	return dev.setShift(CursorShift{Display: true, Right: right})
}

// SetCursor moves the cursor to row, column, both starting at 1.
func (dev *Dev) SetCursor(row, col int) error {
	if err := dev.ready(); err != nil {
		return err
	}
	if row < 1 || row > dev.rows || col < 1 || col > dev.cols {
		return fmt.Errorf("%w: (%d,%d) on a %dx%d display", ErrGeometry, row, col, dev.rows, dev.cols)
	}
	addr := rowAddress[row-1] + byte(col-1)
	return dev.writeInstruction(cmdSetDDRAMAddr | addr&ddramAddrMask)
}

// SetCGRAMAddress points the address counter at character generator RAM.
// Subsequent data writes and reads go to the glyph patterns there.
func (dev *Dev) SetCGRAMAddress(addr byte) error {
	if err := dev.ready(); err != nil {
		return err
	}
	return dev.writeInstruction(cmdSetCGRAMAddr | addr&cgramAddrMask)
}

// ReadStatus returns the busy flag and the address counter.
func (dev *Dev) ReadStatus() (Status, error) {
	if err := dev.ready(); err != nil {
		return Status{}, err
	}
	return dev.readStatus()
}

// ReadData reads the RAM byte at the address counter, which then moves in
// the entry mode direction.
func (dev *Dev) ReadData() (byte, error) {
	if err := dev.ready(); err != nil {
		return 0, err
	}
	return dev.readData()
}

// DisplayText writes the first length bytes of a field starting at row,
// column. text must not be longer than length; a shorter text is padded with
// spaces. Nothing is sent unless the whole field fits on the row.
func (dev *Dev) DisplayText(row, col int, text string, length int) error {
	if err := dev.ready(); err != nil {
		return err
	}
	if row < 1 || row > dev.rows || col < 1 {
		return fmt.Errorf("%w: (%d,%d) on a %dx%d display", ErrGeometry, row, col, dev.rows, dev.cols)
	}
	if length < 0 || col+length-1 > dev.cols {
		return fmt.Errorf("%w: %d characters at column %d of %d", ErrTextOverflow, length, col, dev.cols)
	}
	if len(text) > length {
		return fmt.Errorf("%w: %q is longer than %d", ErrTextOverflow, text, length)
	}
	// Only an empty field can start past the row end.
	if col > dev.cols {
		return fmt.Errorf("%w: (%d,%d) on a %dx%d display", ErrGeometry, row, col, dev.rows, dev.cols)
	}
	if err := dev.SetCursor(row, col); err != nil {
		return err
	}
	for i := range length {
		c := byte(' ')
		if i < len(text) {
			c = text[i]
		}
		if err := dev.writeData(c); err != nil {
			return err
		}
	}
	return nil
}

// DisplayNumber writes n in decimal starting at row, column.
func (dev *Dev) DisplayNumber(row, col int, n int32) error {
	s := strconv.FormatInt(int64(n), 10)
	return dev.DisplayText(row, col, s, len(s))
}

// DisplayTime writes the time of day as hh:mm:ss starting at row, column.
func (dev *Dev) DisplayTime(row, col, hour, minute, second int) error {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return fmt.Errorf("%w: %d:%d:%d", ErrTimeRange, hour, minute, second)
	}
	s := fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
	return dev.DisplayText(row, col, s, len(s))
}

// Lines returns the text of every row, read back from DDRAM. The entry mode
// is switched to left to right for the read back and restored afterwards.
// The cursor is left after the last character read.
func (dev *Dev) Lines() ([]string, error) {
	if err := dev.ready(); err != nil {
		return nil, err
	}
	entry := dev.cfg.Entry
	if !entry.Increment {
		if err := dev.setEntry(EntryMode{Increment: true, ShiftDisplay: entry.ShiftDisplay}); err != nil {
			return nil, err
		}
	}
	lines, err := dev.readLines()
	if entry != dev.cfg.Entry {
		if err2 := dev.setEntry(entry); err == nil {
			err = err2
		}
	}
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (dev *Dev) readLines() ([]string, error) {
	lines := make([]string, dev.rows)
	var sb strings.Builder
	for row := range dev.rows {
		if err := dev.SetCursor(row+1, 1); err != nil {
			return nil, err
		}
		sb.Reset()
		for range dev.cols {
			c, err := dev.readData()
			if err != nil {
				return nil, err
			}
			sb.WriteByte(c)
		}
		lines[row] = sb.String()
	}
	return lines, nil
}
