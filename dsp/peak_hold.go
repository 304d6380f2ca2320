// SPDX-License-Identifier: EPL-2.0

package dsp

import "time"

// PeakHold tracks the maximum of its input over a fixed window.
//
// The output rises as soon as the input exceeds it. It only falls on a window
// boundary, where it drops to the maximum seen during the window that just
// ended. The boundary is counted in samples so the held value is never older
// than two windows, and Step reports the boundary sample through its sync
// flag.
type PeakHold struct {
	window  uint32
	n       uint32
	running float32
	held    float32
	primed  bool
}

// NewPeakHold creates a peak hold over a window of length hold.
func NewPeakHold(hold time.Duration, sps uint32) *PeakHold {
	w := Samples(hold, sps)
	if w == 0 {
		w = 1
	}
	return &PeakHold{window: w}
}

// Step feeds x and returns the held value and whether this sample closed a
// window.
func (p *PeakHold) Step(x float32) (float32, bool) {
	if !p.primed || x > p.running {
		p.running = x
		p.primed = true
	}

	sync := false
	p.n++
	if p.n >= p.window {
		p.n = 0
		p.held = p.running
		p.primed = false
		sync = true
	}

	if p.primed && p.running > p.held {
		return p.running, sync
	}
	return p.held, sync
}

// Value returns the currently held value.
func (p *PeakHold) Value() float32 {
	if p.primed && p.running > p.held {
		return p.running
	}
	return p.held
}

// Reset clears the window.
func (p *PeakHold) Reset() {
	p.n = 0
	p.running = 0
	p.held = 0
	p.primed = false
}
