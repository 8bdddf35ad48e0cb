// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl"
)

// Config is the wiring of the display, read from an HCL file:
//
//	rows = 2
//	cols = 16
//	pins {
//	  rs = "GPIO25"
//	  rw = "GPIO24"
//	  e = "GPIO23"
//	  db4 = "GPIO17"
//	  db5 = "GPIO27"
//	  db6 = "GPIO22"
//	  db7 = "GPIO5"
//	  backlight = "GPIO18"
//	}
//	backpack {
//	  enable = false
//	  bus = ""
//	  address = 39
//	}
type Config struct {
	Rows     int            `hcl:"rows"`
	Cols     int            `hcl:"cols"`
	Pins     PinsConfig     `hcl:"pins"`
	Backpack BackpackConfig `hcl:"backpack"`
}

// PinsConfig holds gpioreg pin names. An empty name is not wired.
type PinsConfig struct {
	RS        string `hcl:"rs"`
	RW        string `hcl:"rw"`
	E         string `hcl:"e"`
	DB0       string `hcl:"db0"`
	DB1       string `hcl:"db1"`
	DB2       string `hcl:"db2"`
	DB3       string `hcl:"db3"`
	DB4       string `hcl:"db4"`
	DB5       string `hcl:"db5"`
	DB6       string `hcl:"db6"`
	DB7       string `hcl:"db7"`
	Backlight string `hcl:"backlight"`
}

// DB returns the data pin names, DB0 first.
func (p *PinsConfig) DB() [8]string {
	return [8]string{p.DB0, p.DB1, p.DB2, p.DB3, p.DB4, p.DB5, p.DB6, p.DB7}
}

// BackpackConfig selects a PCF8574 I²C backpack instead of host pins.
type BackpackConfig struct {
	Enable bool `hcl:"enable"`
	// Bus is the i2creg bus name, empty for the default bus.
	Bus     string `hcl:"bus"`
	Address int    `hcl:"address"`
}

func defaultConfig() *Config {
	return &Config{
		Rows: 2,
		Cols: 16,
		Pins: PinsConfig{
			RS: "GPIO25", RW: "GPIO24", E: "GPIO23",
			DB4: "GPIO17", DB5: "GPIO27", DB6: "GPIO22", DB7: "GPIO5",
		},
		Backpack: BackpackConfig{Address: 0x27},
	}
}

// ParseConfig decodes b over the defaults and validates the result.
func ParseConfig(b []byte) (*Config, error) {
	c := defaultConfig()
	if err := hcl.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ReadConfig reads and parses the file at path. An empty path returns the
// defaults.
func ReadConfig(path string) (*Config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	c, err := ParseConfig(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Rows < 1 || c.Rows > 4 || c.Cols < 1 || c.Cols > 40 {
		return fmt.Errorf("config: %dx%d display, at most 4x40", c.Rows, c.Cols)
	}
	if c.Backpack.Enable {
		if c.Backpack.Address < 0 || c.Backpack.Address > 0x7f {
			return fmt.Errorf("config: backpack address 0x%x", c.Backpack.Address)
		}
		return nil
	}
	p := &c.Pins
	required := map[string]string{"rs": p.RS, "rw": p.RW, "e": p.E, "db4": p.DB4, "db5": p.DB5, "db6": p.DB6, "db7": p.DB7}
	for _, name := range []string{"rs", "rw", "e", "db4", "db5", "db6", "db7"} {
		if required[name] == "" {
			return fmt.Errorf("config: pins.%s is required", name)
		}
	}
	return nil
}
