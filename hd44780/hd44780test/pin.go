// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780test

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pin is a controller input, or a data line shared by the host and the
// controller.
type Pin struct {
	c      *Controller
	name   string
	number int

	output bool
	level  gpio.Level // driven by the host while output
	drive  gpio.Level // driven by the controller during reads
}

func (p *Pin) String() string {
	return p.name
}

func (p *Pin) Halt() error {
	return nil
}

func (p *Pin) Name() string {
	return p.name
}

func (p *Pin) Number() int {
	return p.number
}

func (p *Pin) Function() string {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	if p.output {
		return "Out/" + p.level.String()
	}
	return "In"
}

// In releases the line to the controller.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	p.output = false
	return nil
}

// Read returns the host level for an output, the controller level otherwise.
func (p *Pin) Read() gpio.Level {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	if p.output {
		return p.level
	}
	return p.drive
}

func (p *Pin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *Pin) Pull() gpio.Pull {
	return gpio.Float
}

func (p *Pin) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Out drives the line. A change of the E line clocks the controller.
func (p *Pin) Out(l gpio.Level) error {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	prev := p.level
	p.output = true
	p.level = l
	if p == p.c.E && prev != l {
		p.c.strobe(l == gpio.High)
	}
	return nil
}

func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("hd44780test: PWM not supported")
}

// IsOutput reports whether the host currently drives the line.
func (p *Pin) IsOutput() bool {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	return p.output
}

var _ gpio.PinIO = &Pin{}
