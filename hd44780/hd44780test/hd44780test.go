// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780test simulates an HD44780 character display controller
// behind fake GPIO pins, so that drivers can be tested bit for bit without
// hardware.
//
// The simulation follows the datasheet: the controller powers up with an 8-bit
// interface, a function set instruction switches the width, in 4-bit mode each
// byte takes two enable cycles high nibble first in both directions, and the
// busy flag can be held for a number of polls after each operation.
package hd44780test

import (
	"bytes"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

const (
	ddramSize = 0x80
	cgramSize = 0x40
	lineWidth = 40
)

var rowAddress = [4]byte{0x00, 0x40, 0x14, 0x54}

// Cycle is one enable strobe as seen by the controller.
type Cycle struct {
	Read bool
	RS   gpio.Level
	// Value holds the data lines, DBn in bit n. Unwired lines are 0.
	Value byte
}

// Transfer is one complete byte exchanged with the controller.
type Transfer struct {
	Read bool
	RS   gpio.Level
	// Value is the instruction, data or status byte.
	Value byte
}

// Controller is a simulated HD44780 and the pins wired to it.
type Controller struct {
	// BusyPolls is the number of status reads reporting busy after each
	// executed instruction or data write.
	BusyPolls int
	// StuckBusy makes every status read report busy.
	StuckBusy bool

	RS, RW, E *Pin
	// DB are the data lines, nil when the line is not wired to the host.
	DB [8]*Pin

	mu sync.Mutex

	eightBit  bool
	twoLine   bool
	largeFont bool
	display   bool
	cursor    bool
	blink     bool
	increment bool
	autoShift bool

	// 4-bit interface state.
	writeHigh  bool
	pending    byte
	readHigh   bool
	readResult byte

	ddram [ddramSize]byte
	cgram [cgramSize]byte
	ac    byte
	cg    bool
	shift int
	busy  int

	conflicts int
	cycles    []Cycle
	transfers []Transfer
}

// NewController returns a powered up controller. When eightBit is false only
// DB4-DB7 are wired.
func NewController(eightBit bool) *Controller {
	c := &Controller{eightBit: true, increment: true}
	c.RS = &Pin{c: c, name: "RS"}
	c.RW = &Pin{c: c, name: "RW"}
	c.E = &Pin{c: c, name: "E"}
	first := 4
	if eightBit {
		first = 0
	}
	for i := first; i < 8; i++ {
		c.DB[i] = &Pin{c: c, name: fmt.Sprintf("DB%d", i), number: i}
	}
	for i := range c.ddram {
		c.ddram[i] = ' '
	}
	return c
}

// DataPins returns the data lines as the driver expects them, with a nil
// interface for the unwired ones.
func (c *Controller) DataPins() [8]gpio.PinIO {
	var db [8]gpio.PinIO
	for i, p := range c.DB {
		if p != nil {
			db[i] = p
		}
	}
	return db
}

// strobe is called with c.mu held on every change of the E line.
func (c *Controller) strobe(rising bool) {
	read := c.RW.level == gpio.High
	switch {
	case rising && read:
		c.startRead()
	case !rising && read:
		c.endRead()
	case !rising:
		c.latchWrite()
	}
}

func (c *Controller) busValue() byte {
	var v byte
	for i, p := range c.DB {
		if p != nil && p.output && p.level == gpio.High {
			v |= 1 << i
		}
	}
	return v
}

func (c *Controller) drive(v byte) {
	for i, p := range c.DB {
		if p == nil {
			continue
		}
		if p.output {
			c.conflicts++
		}
		p.drive = gpio.Level((v>>i)&1 == 1)
	}
}

func (c *Controller) latchWrite() {
	v := c.busValue()
	c.cycles = append(c.cycles, Cycle{RS: c.RS.level, Value: v})
	if c.eightBit {
		c.execute(c.RS.level, v)
		return
	}
	if !c.writeHigh {
		c.pending = v & 0xf0
		c.writeHigh = true
		return
	}
	c.writeHigh = false
	c.execute(c.RS.level, c.pending|v>>4)
}

func (c *Controller) startRead() {
	if c.eightBit || !c.readHigh {
		if c.RS.level == gpio.Low {
			c.readResult = c.status()
		} else {
			c.readResult = c.ram()[c.ac&c.mask()]
		}
	}
	v := c.readResult
	if !c.eightBit && c.readHigh {
		v <<= 4
	}
	c.drive(v)
	c.cycles = append(c.cycles, Cycle{Read: true, RS: c.RS.level, Value: v})
}

func (c *Controller) endRead() {
	if !c.eightBit && !c.readHigh {
		c.readHigh = true
		return
	}
	c.readHigh = false
	c.transfers = append(c.transfers, Transfer{Read: true, RS: c.RS.level, Value: c.readResult})
	if c.RS.level == gpio.Low {
		if c.busy > 0 {
			c.busy--
		}
		return
	}
	c.step()
}

func (c *Controller) status() byte {
	v := c.ac & 0x7f
	if c.StuckBusy || c.busy > 0 {
		v |= 0x80
	}
	return v
}

func (c *Controller) ram() []byte {
	if c.cg {
		return c.cgram[:]
	}
	return c.ddram[:]
}

func (c *Controller) mask() byte {
	if c.cg {
		return cgramSize - 1
	}
	return ddramSize - 1
}

// step moves the address counter in the entry mode direction.
func (c *Controller) step() {
	if c.increment {
		c.ac++
	} else {
		c.ac--
	}
	c.ac &= c.mask()
}

func (c *Controller) execute(rs gpio.Level, v byte) {
	c.transfers = append(c.transfers, Transfer{RS: rs, Value: v})
	c.busy = c.BusyPolls
	if rs == gpio.High {
		c.ram()[c.ac&c.mask()] = v
		c.step()
		if c.autoShift && !c.cg {
			if c.increment {
				c.shift--
			} else {
				c.shift++
			}
		}
		return
	}
	switch {
	case v&0x80 != 0:
		c.ac, c.cg = v&0x7f, false
	case v&0x40 != 0:
		c.ac, c.cg = v&0x3f, true
	case v&0x20 != 0:
		c.eightBit = v&0x10 != 0
		c.twoLine = v&0x08 != 0
		c.largeFont = v&0x04 != 0
		c.writeHigh, c.readHigh = false, false
	case v&0x10 != 0:
		right := v&0x04 != 0
		switch {
		case v&0x08 == 0 && right:
			c.ac = (c.ac + 1) & c.mask()
		case v&0x08 == 0:
			c.ac = (c.ac - 1) & c.mask()
		case right:
			c.shift++
		default:
			c.shift--
		}
	case v&0x08 != 0:
		c.display = v&0x04 != 0
		c.cursor = v&0x02 != 0
		c.blink = v&0x01 != 0
	case v&0x04 != 0:
		c.increment = v&0x02 != 0
		c.autoShift = v&0x01 != 0
	case v&0x02 != 0:
		c.ac, c.cg, c.shift = 0, false, 0
	case v&0x01 != 0:
		for i := range c.ddram {
			c.ddram[i] = ' '
		}
		c.ac, c.cg, c.shift = 0, false, 0
		c.increment = true
	}
}

// Lines returns what a rows x cols glass shows, taking the display shift
// into account. The display on/off flag is ignored.
func (c *Controller) Lines(rows, cols int) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, rows)
	for r := range rows {
		base := rowAddress[r]
		start := base & 0x40
		var buf bytes.Buffer
		for col := range cols {
			off := (int(base-start) + col - c.shift) % lineWidth
			if off < 0 {
				off += lineWidth
			}
			buf.WriteByte(c.ddram[int(start)+off])
		}
		out[r] = buf.String()
	}
	return out
}

// String returns the first two 16 character lines.
func (c *Controller) String() string {
	l := c.Lines(2, 16)
	return l[0] + "\n" + l[1]
}

// DDRAM returns the display data RAM byte at addr.
func (c *Controller) DDRAM(addr byte) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ddram[addr&(ddramSize-1)]
}

// CGRAM returns the character generator RAM byte at addr.
func (c *Controller) CGRAM(addr byte) byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cgram[addr&(cgramSize-1)]
}

// Address returns the address counter.
func (c *Controller) Address() byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ac
}

// DisplayShift returns the number of positions the display is shifted right.
func (c *Controller) DisplayShift() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shift
}

// State is a snapshot of the controller registers.
type State struct {
	EightBit, TwoLine, LargeFont bool
	Display, Cursor, Blink       bool
	Increment, AutoShift         bool
}

// State returns the current register flags.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		EightBit: c.eightBit, TwoLine: c.twoLine, LargeFont: c.largeFont,
		Display: c.display, Cursor: c.cursor, Blink: c.blink,
		Increment: c.increment, AutoShift: c.autoShift,
	}
}

// Cycles returns the enable strobes seen since the last ClearLog.
func (c *Controller) Cycles() []Cycle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Cycle(nil), c.cycles...)
}

// Transfers returns the complete bytes exchanged since the last ClearLog.
func (c *Controller) Transfers() []Transfer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Transfer(nil), c.transfers...)
}

// Writes returns the bytes written to the controller since the last
// ClearLog, leaving out the reads.
func (c *Controller) Writes() []Transfer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Transfer
	for _, t := range c.transfers {
		if !t.Read {
			out = append(out, t)
		}
	}
	return out
}

// ClearLog forgets the recorded cycles and transfers.
func (c *Controller) ClearLog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cycles = nil
	c.transfers = nil
}

// Conflicts returns how many times the controller drove a data line that the
// host was driving too.
func (c *Controller) Conflicts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conflicts
}
