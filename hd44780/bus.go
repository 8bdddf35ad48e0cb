// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Bus timings. Each one is well above the datasheet figure so that slow pin
// drivers don't need to be accounted for.
const (
	tAS  = time.Microsecond // RS, R/W to E set-up, 40ns min.
	tDSW = time.Microsecond // Data set-up before E falls, 80ns min.
	tDDR = time.Microsecond // E rise to data valid on read, 320ns max.
	tCYC = time.Microsecond // Remainder of the 1200ns enable cycle.
)

// writeHalf performs one enable cycle in the write direction. Every wired
// data pin DBn is driven with bit n of v, so on a 4-bit bus only the high
// nibble of v reaches the controller.
func (dev *Dev) writeHalf(v byte) error {
	if err := dev.pins.RW.Out(gpio.Low); err != nil {
		return busErr("r/w", err)
	}
	dev.clock.Sleep(tAS)
	if err := dev.pins.E.Out(gpio.High); err != nil {
		return busErr("enable", err)
	}
	for i, p := range dev.pins.DB {
		if p == nil {
			continue
		}
		if err := p.Out(gpio.Level((v>>i)&1 == 1)); err != nil {
			_ = dev.pins.E.Out(gpio.Low)
			return busErr(p.Name(), err)
		}
	}
	dev.clock.Sleep(tDSW)
	if err := dev.pins.E.Out(gpio.Low); err != nil {
		return busErr("enable", err)
	}
	dev.clock.Sleep(tCYC)
	return nil
}

// readHalf performs one enable cycle in the read direction and returns the
// levels of the wired data pins, DBn in bit n. The data pins are always
// left as outputs.
func (dev *Dev) readHalf() (v byte, err error) {
	defer func() {
		if derr := dev.driveData(); err == nil {
			err = derr
		}
	}()
	for _, p := range dev.pins.DB {
		if p == nil {
			continue
		}
		if err = p.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return 0, busErr(p.Name(), err)
		}
	}
	if err = dev.pins.RW.Out(gpio.High); err != nil {
		return 0, busErr("r/w", err)
	}
	dev.clock.Sleep(tAS)
	if err = dev.pins.E.Out(gpio.High); err != nil {
		return 0, busErr("enable", err)
	}
	dev.clock.Sleep(tDDR)
	for i, p := range dev.pins.DB {
		if p != nil && p.Read() == gpio.High {
			v |= 1 << i
		}
	}
	if err = dev.pins.E.Out(gpio.Low); err != nil {
		return 0, busErr("enable", err)
	}
	dev.clock.Sleep(tCYC)
	return v, nil
}

// driveData returns the data pins to their idle output direction.
func (dev *Dev) driveData() error {
	for _, p := range dev.pins.DB {
		if p == nil {
			continue
		}
		if err := p.Out(gpio.Low); err != nil {
			return busErr(p.Name(), err)
		}
	}
	return nil
}

// writeByte transfers one byte, as two nibbles high first when the bus is 4
// bits wide.
func (dev *Dev) writeByte(v byte) error {
	if err := dev.writeHalf(v); err != nil {
		return err
	}
	if dev.cfg.Function.EightBit {
		return nil
	}
	return dev.writeHalf(v << 4)
}

// readByte is the counterpart of writeByte. In 4-bit mode the controller
// presents the high nibble then the low nibble on DB4-DB7.
func (dev *Dev) readByte() (byte, error) {
	hi, err := dev.readHalf()
	if err != nil || dev.cfg.Function.EightBit {
		return hi, err
	}
	lo, err := dev.readHalf()
	if err != nil {
		return 0, err
	}
	return hi&0xf0 | (lo&0xf0)>>4, nil
}
