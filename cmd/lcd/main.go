// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// lcd brings up an HD44780 character display and shows a title, a counter and
// the time of day on it.
//
// With -sim, the display is a simulated controller rendered on the terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/charlcd/charscreen"
	"github.com/GermanBionicSystems/charlcd/hd44780"
	"github.com/GermanBionicSystems/charlcd/hd44780/hd44780test"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

type display struct {
	dev *hd44780.Dev
	// sim is set in simulation mode.
	sim    *hd44780test.Controller
	screen *charscreen.Dev
	close  func() error
}

func openSim(c *Config) (*display, error) {
	eightBit := true
	db := c.Pins.DB()
	for _, name := range db[:4] {
		if name == "" {
			eightBit = false
		}
	}
	sim := hd44780test.NewController(eightBit)
	pins := &hd44780.Pins{RS: sim.RS, RW: sim.RW, E: sim.E, DB: sim.DataPins()}
	dev, err := hd44780.New(pins, &hd44780.Opts{MaxRows: c.Rows, MaxCols: c.Cols})
	if err != nil {
		return nil, err
	}
	if err := dev.Reset(c.Rows, c.Cols); err != nil {
		return nil, err
	}
	return &display{dev: dev, sim: sim, screen: charscreen.New(nil), close: func() error { return nil }}, nil
}

func openBackpack(c *Config) (*display, error) {
	bus, err := i2creg.Open(c.Backpack.Bus)
	if err != nil {
		return nil, fmt.Errorf("failed to open I²C: %w", err)
	}
	dev, err := hd44780.NewPCF857xBackpack(bus, uint16(c.Backpack.Address), c.Rows, c.Cols, nil)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	return &display{dev: dev, close: bus.Close}, nil
}

func pinByName(name string) (gpio.PinIO, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no pin %q", name)
	}
	return p, nil
}

func openGPIO(c *Config) (*display, error) {
	pins := &hd44780.Pins{}
	for _, ref := range []struct {
		name string
		dst  *gpio.PinOut
	}{
		{c.Pins.RS, &pins.RS},
		{c.Pins.RW, &pins.RW},
		{c.Pins.E, &pins.E},
		{c.Pins.Backlight, &pins.Backlight},
	} {
		p, err := pinByName(ref.name)
		if err != nil {
			return nil, err
		}
		if p != nil {
			*ref.dst = p
		}
	}
	for i, name := range c.Pins.DB() {
		p, err := pinByName(name)
		if err != nil {
			return nil, err
		}
		if p != nil {
			pins.DB[i] = p
		}
	}
	dev, err := hd44780.NewHD44780(pins, c.Rows, c.Cols)
	if err != nil {
		return nil, err
	}
	return &display{dev: dev, close: func() error { return nil }}, nil
}

// show renders the glass on the terminal in simulation mode.
func (d *display) show() error {
	if d.sim == nil {
		return nil
	}
	return d.screen.Render(d.sim.Lines(d.dev.Rows(), d.dev.Cols()))
}

func (d *display) Halt() error {
	err := d.dev.Halt()
	if d.screen != nil {
		_ = d.screen.Halt()
	}
	if cerr := d.close(); err == nil {
		err = cerr
	}
	return err
}

// run shows text on the first row, then once a second a counter and the
// time on the last row.
func run(d *display, text string, seconds int, png string) error {
	dev := d.dev
	cols := dev.Cols()
	if len(text) > cols {
		text = text[:cols]
	}
	if err := dev.DisplayText(1, 1, text, cols); err != nil {
		return err
	}
	if err := d.show(); err != nil {
		return err
	}
	row := dev.Rows()
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for i := range seconds {
		if row > 1 || text == "" {
			if err := tick(dev, row, int32(i), time.Now()); err != nil {
				return err
			}
		}
		if err := d.show(); err != nil {
			return err
		}
		<-t.C
	}
	if png == "" {
		return nil
	}
	lines, err := dev.Lines()
	if err != nil {
		return err
	}
	return charscreen.SavePNG(png, lines, nil)
}

// tick writes n at the start of row and the time of day at its end when
// both fit.
func tick(dev *hd44780.Dev, row int, n int32, now time.Time) error {
	cols := dev.Cols()
	clock := cols >= 8
	width := cols
	if clock {
		width = cols - 8
	}
	if width > 0 {
		if err := dev.DisplayText(row, 1, "", width); err != nil {
			return err
		}
		if len(fmt.Sprint(n)) <= width {
			if err := dev.DisplayNumber(row, 1, n); err != nil {
				return err
			}
		}
	}
	if clock {
		return dev.DisplayTime(row, cols-7, now.Hour(), now.Minute(), now.Second())
	}
	return nil
}

func mainImpl() error {
	configPath := flag.String("config", "", "HCL file describing the wiring")
	sim := flag.Bool("sim", false, "use a simulated controller rendered on the terminal")
	png := flag.String("png", "", "save the final display content to this PNG file")
	text := flag.String("text", "Hello, World!", "text on the first row")
	seconds := flag.Int("seconds", 10, "how long to run")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}
	c, err := ReadConfig(*configPath)
	if err != nil {
		return err
	}

	var d *display
	switch {
	case *sim:
		d, err = openSim(c)
	default:
		if _, err = host.Init(); err != nil {
			return err
		}
		if c.Backpack.Enable {
			d, err = openBackpack(c)
		} else {
			d, err = openGPIO(c)
		}
	}
	if err != nil {
		return err
	}
	log.Printf("%s", d.dev)
	err = run(d, *text, *seconds, *png)
	if herr := d.Halt(); err == nil {
		err = herr
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "lcd: %s.\n", err)
		os.Exit(1)
	}
}
