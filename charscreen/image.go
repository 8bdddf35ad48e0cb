// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package charscreen

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"periph.io/x/conn/v3/display"
)

// ImageOpts controls the look of the rendered glass.
type ImageOpts struct {
	// Size is the font size in points at 72 DPI. Defaults to 24.
	Size float64
	// Glass, Cell and Ink default to a yellow-green backlit panel.
	Glass color.Color
	Cell  color.Color
	Ink   color.Color
}

var (
	defaultGlass = color.NRGBA{0x7a, 0x9a, 0x0c, 0xff}
	defaultCell  = color.NRGBA{0x8b, 0xac, 0x0f, 0xff}
	defaultInk   = color.NRGBA{0x0f, 0x38, 0x0f, 0xff}
)

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// Image draws lines as an LCD panel would show them, one cell per character
// with a margin of half a cell around the text.
func Image(lines []string, opts *ImageOpts) (image.Image, error) {
	o := ImageOpts{Size: 24, Glass: defaultGlass, Cell: defaultCell, Ink: defaultInk}
	if opts != nil {
		if opts.Size > 0 {
			o.Size = opts.Size
		}
		if opts.Glass != nil {
			o.Glass = opts.Glass
		}
		if opts.Cell != nil {
			o.Cell = opts.Cell
		}
		if opts.Ink != nil {
			o.Ink = opts.Ink
		}
	}
	f, err := monoFont()
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: o.Size})
	defer face.Close()

	cols := 0
	for _, l := range lines {
		cols = max(cols, len(l))
	}
	// One pixel of gap between cells.
	cellW := font.MeasureString(face, "M").Ceil() + 1
	cellH := face.Metrics().Height.Ceil() + 1
	margin := cellW / 2
	w := 2*margin + cols*cellW
	h := 2*margin + len(lines)*cellH

	dc := gg.NewContext(w, h)
	dc.SetColor(o.Glass)
	dc.Clear()
	dc.SetFontFace(face)
	for row, l := range lines {
		y := float64(margin + row*cellH)
		for col := range cols {
			x := float64(margin + col*cellW)
			dc.SetColor(o.Cell)
			dc.DrawRectangle(x, y, float64(cellW-1), float64(cellH-1))
			dc.Fill()
			if col >= len(l) || l[col] == ' ' {
				continue
			}
			dc.SetColor(o.Ink)
			dc.DrawStringAnchored(printable(l[col:col+1]), x+float64(cellW-1)/2, y+float64(cellH-1)/2, 0.5, 0.5)
		}
	}
	return dc.Image(), nil
}

// DrawTo renders lines with Image and draws the result on dst without
// scaling, the top left of the panel on the top left of dst.
func DrawTo(dst display.Drawer, lines []string, opts *ImageOpts) error {
	img, err := Image(lines, opts)
	if err != nil {
		return err
	}
	return dst.Draw(dst.Bounds(), img, image.Point{})
}

// SavePNG renders lines with Image and writes the result to path.
func SavePNG(path string, lines []string, opts *ImageOpts) error {
	img, err := Image(lines, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
