// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"time"

	"periph.io/x/host/v3/cpu"
)

// Clock paces the bus. Sleep must block for at least d; Now is only used to
// bound busy flag polling.
type Clock interface {
	Sleep(d time.Duration)
	Now() time.Time
}

// hostClock spins for the sub-millisecond bus timings, where the scheduler
// granularity of time.Sleep would dominate, and sleeps for the rest.
type hostClock struct{}

func (hostClock) Sleep(d time.Duration) {
	if d < time.Millisecond {
		cpu.Nanospin(d)
		return
	}
	time.Sleep(d)
}

func (hostClock) Now() time.Time {
	return time.Now()
}
