// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780test

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// strobeWrite clocks v on the wired data lines.
func strobeWrite(c *Controller, rs gpio.Level, v byte) {
	_ = c.RS.Out(rs)
	_ = c.RW.Out(gpio.Low)
	for i, p := range c.DB {
		if p != nil {
			_ = p.Out(gpio.Level((v>>i)&1 == 1))
		}
	}
	_ = c.E.Out(gpio.High)
	_ = c.E.Out(gpio.Low)
}

func strobeRead(c *Controller, rs gpio.Level) byte {
	_ = c.RS.Out(rs)
	for _, p := range c.DB {
		if p != nil {
			_ = p.In(gpio.PullNoChange, gpio.NoEdge)
		}
	}
	_ = c.RW.Out(gpio.High)
	_ = c.E.Out(gpio.High)
	var v byte
	for i, p := range c.DB {
		if p != nil && p.Read() == gpio.High {
			v |= 1 << i
		}
	}
	_ = c.E.Out(gpio.Low)
	return v
}

func TestEightBit(t *testing.T) {
	c := NewController(true)
	strobeWrite(c, gpio.Low, 0x38)
	strobeWrite(c, gpio.Low, 0x0c)
	strobeWrite(c, gpio.Low, 0xc2)
	strobeWrite(c, gpio.High, 'x')
	if got := c.DDRAM(0x42); got != 'x' {
		t.Errorf("DDRAM[0x42] = %q", got)
	}
	if l := c.Lines(2, 16); l[1] != "  x             " {
		t.Errorf("line 2 = %q", l[1])
	}
	st := c.State()
	if !st.EightBit || !st.TwoLine || !st.Display {
		t.Errorf("state %+v", st)
	}
	if a := c.Address(); a != 0x43 {
		t.Errorf("address 0x%02x", a)
	}
}

func TestFourBit(t *testing.T) {
	c := NewController(false)
	c.BusyPolls = 1
	// Power up is 8-bit, a single cycle switches to 4-bit.
	strobeWrite(c, gpio.Low, 0x20)
	if c.State().EightBit {
		t.Fatal("still in 8-bit mode")
	}
	if v := strobeRead(c, gpio.Low); v != 0x80 {
		t.Errorf("status high nibble 0x%02x, want busy", v)
	}
	if v := strobeRead(c, gpio.Low); v != 0x00 {
		t.Errorf("status low nibble 0x%02x", v)
	}
	strobeWrite(c, gpio.High, 0x40)
	strobeWrite(c, gpio.High, 0x10)
	if got := c.DDRAM(0); got != 'A' {
		t.Errorf("DDRAM[0] = 0x%02x", got)
	}
	want := []Transfer{
		{RS: gpio.Low, Value: 0x20},
		{Read: true, RS: gpio.Low, Value: 0x80},
		{RS: gpio.High, Value: 'A'},
	}
	got := c.Transfers()
	if len(got) != len(want) {
		t.Fatalf("transfers %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transfer %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if n := c.Conflicts(); n != 0 {
		t.Errorf("%d conflicts", n)
	}
}

func TestConflict(t *testing.T) {
	c := NewController(true)
	for _, p := range c.DB {
		_ = p.Out(gpio.Low)
	}
	_ = c.RW.Out(gpio.High)
	_ = c.E.Out(gpio.High)
	_ = c.E.Out(gpio.Low)
	if n := c.Conflicts(); n != 8 {
		t.Errorf("%d conflicts, want 8", n)
	}
}

func TestShiftedLines(t *testing.T) {
	c := NewController(true)
	strobeWrite(c, gpio.Low, 0x38)
	strobeWrite(c, gpio.High, 'a')
	strobeWrite(c, gpio.Low, 0x18) // shift display left
	if s := c.DisplayShift(); s != -1 {
		t.Errorf("shift %d", s)
	}
	if l := c.Lines(1, 4)[0]; l != "    " {
		t.Errorf("line 1 = %q", l)
	}
	strobeWrite(c, gpio.Low, 0x02)
	if l := c.Lines(1, 4)[0]; l != "a   " {
		t.Errorf("line 1 after home = %q", l)
	}
}

func TestBackpack(t *testing.T) {
	b := NewBackpack(0x27)
	if err := b.Tx(0x26, []byte{0}, nil); err == nil {
		t.Error("Tx() to the wrong address succeeded")
	}
	// E high then low with D5 set and RS, RW low: function set 4-bit.
	if err := b.Tx(0x27, []byte{0x24, 0x20}, nil); err != nil {
		t.Fatal(err)
	}
	if b.Controller.State().EightBit {
		t.Error("still in 8-bit mode")
	}
	if b.Backlight() {
		t.Error("backlight on")
	}
	if err := b.Tx(0x27, []byte{0x08}, nil); err != nil {
		t.Fatal(err)
	}
	if !b.Backlight() {
		t.Error("backlight off")
	}
	// Release the data lines and read: the idle controller drives them low.
	r := make([]byte, 1)
	if err := b.Tx(0x27, []byte{0xfa, 0xfe}, r); err != nil {
		t.Fatal(err)
	}
	if r[0] != 0x0e {
		t.Errorf("port 0x%02x, want 0x0e", r[0])
	}
	if n := b.Transactions(); n != 3 {
		t.Errorf("%d transactions", n)
	}
}

func TestClock(t *testing.T) {
	start := time.Unix(10, 0)
	c := NewClock(start)
	c.Sleep(time.Millisecond)
	c.Sleep(2 * time.Millisecond)
	if got := c.Now().Sub(start); got != 3*time.Millisecond {
		t.Errorf("Now() advanced %s", got)
	}
	if c.Slept() != 3*time.Millisecond {
		t.Errorf("Slept() = %s", c.Slept())
	}
}
