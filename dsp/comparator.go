// SPDX-License-Identifier: EPL-2.0

package dsp

// WindowComparator is a Schmitt trigger. It turns on when the input rises
// above high and turns off when it falls below low.
type WindowComparator struct {
	low, high float32
	state     bool
}

// NewWindowComparator creates a comparator with release threshold low and
// attack threshold high.
func NewWindowComparator(low, high Decibel) *WindowComparator {
	return &WindowComparator{low: low.Gain(), high: high.Gain()}
}

// Step feeds x and returns the comparator state.
func (w *WindowComparator) Step(x float32) bool {
	if x > w.high {
		w.state = true
	} else if x < w.low {
		w.state = false
	}
	return w.state
}

// State returns the comparator state without advancing.
func (w *WindowComparator) State() bool { return w.state }

// Reset turns the comparator off.
func (w *WindowComparator) Reset() { w.state = false }

// RisingEdge reports false to true transitions.
type RisingEdge struct {
	prev bool
}

// Step feeds b and reports whether it just went high.
func (r *RisingEdge) Step(b bool) bool {
	edge := b && !r.prev
	r.prev = b
	return edge
}
