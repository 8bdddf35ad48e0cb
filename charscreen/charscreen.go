// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charscreen renders the text of a character display, either to a
// terminal using ANSI color codes or to an image.
//
// Useful while the display is still in the mail, or to look at what a
// simulated controller shows.
package charscreen

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for the terminal renderer.
type Opts struct {
	Palette *ansi256.Palette
	// Bezel is the color of the frame around the glass. Defaults to a dark
	// green.
	Bezel color.NRGBA

	_ struct{}
}

var defaultBezel = color.NRGBA{0x1e, 0x3c, 0x14, 0xff}

// Dev draws the lines of a character display on a terminal. Each Render
// overwrites the previous one in place.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	bezel   color.NRGBA

	buf   bytes.Buffer
	drawn int // terminal lines written by the last Render
}

// New returns a Dev that renders on stdout.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that renders to w.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{w: w, palette: *p, bezel: opts.Bezel}
	if d.bezel == (color.NRGBA{}) {
		d.bezel = defaultBezel
	}
	return d
}

func (d *Dev) String() string {
	return "CharScreen"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and moves past the last rendering.
func (d *Dev) Halt() error {
	d.drawn = 0
	_, err := io.WriteString(d.w, "\033[0m\n")
	return err
}

// Render draws lines inside a frame. Characters outside of printable ASCII,
// like the CGRAM glyph codes, are shown as '?'.
func (d *Dev) Render(lines []string) error {
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	d.buf.Reset()
	if d.drawn > 0 {
		fmt.Fprintf(&d.buf, "\033[%dA", d.drawn)
	}
	// Blocks are two columns wide.
	edge := d.palette.Block(d.bezel)
	border := strings.Repeat(edge, (width+1)/2+2)
	d.buf.WriteString("\r" + border + "\033[0m\n")
	for _, l := range lines {
		d.buf.WriteString("\r" + edge + "\033[0m")
		d.buf.WriteString(printable(l))
		d.buf.WriteString(strings.Repeat(" ", width-len(l)+(width%2)))
		d.buf.WriteString(edge + "\033[0m\n")
	}
	d.buf.WriteString("\r" + border + "\033[0m\n")
	d.drawn = len(lines) + 2
	_, err := d.buf.WriteTo(d.w)
	return err
}

func printable(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			b[i] = '?'
		}
	}
	return string(b)
}
