// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"errors"
	"fmt"
)

var (
	// ErrReadyTimeout is returned when the busy flag is still set at the end
	// of the wall clock second in which polling started.
	ErrReadyTimeout = errors.New("hd44780: controller busy")
	// ErrGeometry is returned for a row or column outside of the display.
	ErrGeometry = errors.New("hd44780: position out of range")
	// ErrTextOverflow is returned when text does not fit in the rest of the
	// row, or when the declared length is shorter than the text.
	ErrTextOverflow = errors.New("hd44780: text does not fit")
	// ErrTimeRange is returned by DisplayTime for an invalid time of day.
	ErrTimeRange = errors.New("hd44780: time out of range")
	// ErrNotInitialized is returned by every operation until Reset succeeds.
	ErrNotInitialized = errors.New("hd44780: not initialized")
	// ErrPins is returned by New for an incomplete pin assignment.
	ErrPins = errors.New("hd44780: invalid pin assignment")
	// ErrSelector is returned when decoding a byte of the wrong instruction.
	ErrSelector = errors.New("hd44780: wrong instruction selector")
	// ErrBus wraps a failure of the underlying GPIO pins.
	ErrBus = errors.New("hd44780: bus error")
)

func busErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrBus, op, err)
}
