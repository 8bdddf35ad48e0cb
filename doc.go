// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package charlcd is a container for the HD44780 character display driver
// and its companions.
//
// hd44780 drives the controller over GPIO pins or a PCF8574 I²C backpack,
// pcf857x exposes the expander pins, hd44780test simulates the controller and
// charscreen renders display content on a terminal or to an image.
package charlcd
