// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780test

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// PCF8574 port bits of the common LCD1602/LCD2004 backpack.
const (
	bpRS        = 0x01
	bpRW        = 0x02
	bpE         = 0x04
	bpBacklight = 0x08
)

// Backpack is an i2c.Bus with a PCF8574 backpack and a 4-bit controller
// attached at one address.
type Backpack struct {
	Controller *Controller

	mu    sync.Mutex
	addr  uint16
	latch byte
	txs   int
}

// NewBackpack returns a backpack answering at addr.
func NewBackpack(addr uint16) *Backpack {
	return &Backpack{Controller: NewController(false), addr: addr, latch: 0xff}
}

func (b *Backpack) String() string {
	return fmt.Sprintf("hd44780test.Backpack(0x%02x)", b.addr)
}

// Tx implements i2c.Bus. Each written byte sets the expander port, a read
// returns the port levels.
func (b *Backpack) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if addr != b.addr {
		return fmt.Errorf("hd44780test: no device at 0x%02x", addr)
	}
	b.txs++
	for _, v := range w {
		b.apply(v)
	}
	for i := range r {
		r[i] = b.port()
	}
	return nil
}

func (b *Backpack) SetSpeed(f physic.Frequency) error {
	return nil
}

// Backlight reports whether the backlight bit is set.
func (b *Backpack) Backlight() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latch&bpBacklight != 0
}

// Transactions returns the number of I²C transactions so far.
func (b *Backpack) Transactions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.txs
}

// apply routes a port write to the controller, E last so that it clocks the
// lines set in the same write.
func (b *Backpack) apply(v byte) {
	b.latch = v
	c := b.Controller
	_ = c.RS.Out(gpio.Level(v&bpRS != 0))
	rw := v&bpRW != 0
	_ = c.RW.Out(gpio.Level(rw))
	for i := 4; i < 8; i++ {
		high := v&(1<<i) != 0
		if high && rw {
			_ = c.DB[i].In(gpio.PullUp, gpio.NoEdge)
		} else {
			_ = c.DB[i].Out(gpio.Level(high))
		}
	}
	_ = c.E.Out(gpio.Level(v&bpE != 0))
}

// port returns the levels on the expander pins: a latched low always reads
// low, a released data line reads what the controller drives.
func (b *Backpack) port() byte {
	v := b.latch
	for i := 4; i < 8; i++ {
		if v&(1<<i) != 0 && b.Controller.DB[i].Read() == gpio.Low {
			v &^= 1 << i
		}
	}
	return v
}

var _ i2c.Bus = &Backpack{}
