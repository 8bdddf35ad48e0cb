// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "periph.io/x/conn/v3/gpio"

type registerSelect gpio.Level

const (
	modeInstruction = registerSelect(gpio.Low)
	modeData        = registerSelect(gpio.High)
)

func (dev *Dev) selectRegister(rs registerSelect) error {
	if err := dev.pins.RS.Out(gpio.Level(rs)); err != nil {
		return busErr("register select", err)
	}
	return nil
}

// readStatus reads the busy flag and address counter. It is not gated, the
// status register can be read while the controller is busy.
func (dev *Dev) readStatus() (Status, error) {
	if err := dev.selectRegister(modeInstruction); err != nil {
		return Status{}, err
	}
	b, err := dev.readByte()
	if err != nil {
		return Status{}, err
	}
	return DecodeStatus(b), nil
}

// waitReady polls the status register until the busy flag clears. Polling
// gives up when the wall clock second in which it started is over, so the
// bound is anywhere between a few microseconds and a second.
func (dev *Dev) waitReady() error {
	st, err := dev.readStatus()
	if err != nil {
		return err
	}
	window := dev.clock.Now().Unix()
	for st.Busy && dev.clock.Now().Unix() == window {
		if st, err = dev.readStatus(); err != nil {
			return err
		}
	}
	if st.Busy {
		return ErrReadyTimeout
	}
	return nil
}

func (dev *Dev) writeInstruction(b byte) error {
	if err := dev.waitReady(); err != nil {
		return err
	}
	if err := dev.selectRegister(modeInstruction); err != nil {
		return err
	}
	return dev.writeByte(b)
}

func (dev *Dev) writeData(b byte) error {
	if err := dev.waitReady(); err != nil {
		return err
	}
	if err := dev.selectRegister(modeData); err != nil {
		return err
	}
	return dev.writeByte(b)
}

func (dev *Dev) readData() (byte, error) {
	if err := dev.waitReady(); err != nil {
		return 0, err
	}
	if err := dev.selectRegister(modeData); err != nil {
		return 0, err
	}
	return dev.readByte()
}

// writeRaw sends the high nibble of b, or all of it on an 8-bit bus, in a
// single enable cycle without looking at the busy flag. Only valid while
// the controller may still be in an unknown interface mode.
func (dev *Dev) writeRaw(b byte) error {
	if err := dev.selectRegister(modeInstruction); err != nil {
		return err
	}
	return dev.writeHalf(b)
}

// The set* helpers transmit a candidate register value and commit it to the
// mirror only once the controller accepted it.

func (dev *Dev) setFunction(f FunctionSet) error {
	if err := dev.writeInstruction(f.Encode()); err != nil {
		return err
	}
	dev.cfg.Function = f
	return nil
}

func (dev *Dev) setEntry(e EntryMode) error {
	if err := dev.writeInstruction(e.Encode()); err != nil {
		return err
	}
	dev.cfg.Entry = e
	return nil
}

func (dev *Dev) setControl(c DisplayControl) error {
	if err := dev.writeInstruction(c.Encode()); err != nil {
		return err
	}
	dev.cfg.Control = c
	return nil
}

func (dev *Dev) setShift(s CursorShift) error {
	if err := dev.writeInstruction(s.Encode()); err != nil {
		return err
	}
	dev.cfg.Shift = s
	return nil
}
