// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseConfig(t *testing.T) {
	src := `
rows = 4
cols = 20
pins {
  rs = "P1_3"
  rw = "P1_5"
  e = "P1_7"
  db0 = "P1_11"
  db1 = "P1_12"
  db2 = "P1_13"
  db3 = "P1_15"
  db4 = "P1_16"
  db5 = "P1_18"
  db6 = "P1_22"
  db7 = "P1_29"
}
`
	c, err := ParseConfig([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := &Config{
		Rows: 4,
		Cols: 20,
		Pins: PinsConfig{
			RS: "P1_3", RW: "P1_5", E: "P1_7",
			DB0: "P1_11", DB1: "P1_12", DB2: "P1_13", DB3: "P1_15",
			DB4: "P1_16", DB5: "P1_18", DB6: "P1_22", DB7: "P1_29",
		},
		Backpack: BackpackConfig{Address: 0x27},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("ParseConfig() (-want +got):\n%s", diff)
	}
	if db := c.Pins.DB(); db[0] != "P1_11" || db[7] != "P1_29" {
		t.Errorf("DB() = %v", db)
	}
}

func TestParseConfigBackpack(t *testing.T) {
	c, err := ParseConfig([]byte("backpack {\n  enable = true\n  bus = \"I2C1\"\n  address = 38\n}\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := BackpackConfig{Enable: true, Bus: "I2C1", Address: 38}
	if diff := cmp.Diff(want, c.Backpack); diff != "" {
		t.Errorf("Backpack (-want +got):\n%s", diff)
	}
	if c.Rows != 2 || c.Cols != 16 {
		t.Errorf("defaults lost: %dx%d", c.Rows, c.Cols)
	}
}

func TestParseConfigErrors(t *testing.T) {
	for name, src := range map[string]string{
		"syntax":      "rows = ",
		"rows":        "rows = 5",
		"cols":        "cols = 0",
		"missing rs":  "pins {\n  rs = \"\"\n}\n",
		"bad address": "backpack {\n  enable = true\n  address = 200\n}\n",
	} {
		if _, err := ParseConfig([]byte(src)); err == nil {
			t.Errorf("%s: ParseConfig(%q) succeeded", name, src)
		}
	}
}

func TestReadConfig(t *testing.T) {
	c, err := ReadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(defaultConfig(), c); diff != "" {
		t.Errorf("ReadConfig(\"\") (-want +got):\n%s", diff)
	}
	path := filepath.Join(t.TempDir(), "lcd.hcl")
	if err := os.WriteFile(path, []byte("cols = 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if c, err = ReadConfig(path); err != nil || c.Cols != 20 {
		t.Errorf("ReadConfig() = %+v, %v", c, err)
	}
	if _, err := ReadConfig(filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Error("ReadConfig() of a missing file succeeded")
	}
}
