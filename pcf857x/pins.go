// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

type pcfPin struct {
	dev    *Dev
	number int
	name   string
}

func (pin *pcfPin) mask() uint16 {
	return 1 << pin.number
}

func (pin *pcfPin) DefaultPull() gpio.Pull {
	return gpio.PullUp
}

func (pin *pcfPin) Function() string {
	if pin.dev.isInput(pin.mask()) {
		return "In"
	}
	return "Out"
}

func (pin *pcfPin) Halt() error {
	return nil
}

// In releases the pin by latching it high. The chip has a fixed weak pull-up
// and no edge detection per pin, pull and edge are ignored.
func (pin *pcfPin) In(pull gpio.Pull, edge gpio.Edge) error {
	m := pin.mask()
	if err := pin.dev.set(m, m); err != nil {
		return err
	}
	pin.dev.setInput(m, true)
	return nil
}

func (pin *pcfPin) Name() string {
	return pin.name
}

func (pin *pcfPin) Number() int {
	return pin.number
}

func (pin *pcfPin) Out(l gpio.Level) error {
	m := pin.mask()
	var v uint16
	if l {
		v = m
	}
	if err := pin.dev.set(v, m); err != nil {
		return err
	}
	pin.dev.setInput(m, false)
	return nil
}

func (pin *pcfPin) Pull() gpio.Pull {
	return gpio.PullUp
}

// Read returns the level on the pin. On an I²C failure it logs the error and
// returns Low.
func (pin *pcfPin) Read() gpio.Level {
	v, err := pin.dev.get()
	if err != nil {
		log.Println(err)
		return gpio.Low
	}
	return v&pin.mask() != 0
}

func (pin *pcfPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (pin *pcfPin) String() string {
	return pin.name
}

// The interrupt output of the chip doesn't tell which pin changed.
func (pin *pcfPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

var _ gpio.PinIO = &pcfPin{}
