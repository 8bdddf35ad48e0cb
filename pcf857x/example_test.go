// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/charlcd/pcf857x"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// This example polls the busy flag of an HD44780 behind a PCF8574 LCD
// backpack: P0 is RS, P1 is R/W, P2 is E and P7 is DB7.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	backpack, err := pcf857x.New(bus, 0x27, pcf857x.PCF8574)
	if err != nil {
		log.Fatalln(err)
	}
	defer backpack.Halt()
	rs, rw, e, db7 := backpack.Pins[0], backpack.Pins[1], backpack.Pins[2], backpack.Pins[7]

	// Release DB7 so the controller can pull it low, then select a status
	// read and raise E.
	if err := db7.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		log.Fatalln(err)
	}
	for _, step := range []struct {
		pin gpio.PinOut
		l   gpio.Level
	}{{rs, gpio.Low}, {rw, gpio.High}, {e, gpio.High}} {
		if err := step.pin.Out(step.l); err != nil {
			log.Fatalln(err)
		}
	}
	busy := db7.Read()
	if err := e.Out(gpio.Low); err != nil {
		log.Fatalln(err)
	}
	if err := rw.Out(gpio.Low); err != nil {
		log.Fatalln(err)
	}
	fmt.Printf("%s busy=%t\n", backpack, busy == gpio.High)
}
