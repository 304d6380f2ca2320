// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"time"
)

// Window is a precomputed window table.
type Window struct {
	w []float32
}

// Size returns the number of points in the table.
func (w *Window) Size() int { return len(w.w) }

// At returns the i-th point.
func (w *Window) At(i int) float32 { return w.w[i] }

// windowSize matches the table length used by the crossfade tapers:
// one point per sample plus the closing point.
func windowSize(width time.Duration, sps uint32) int {
	return int(width.Seconds()*float64(sps)) + 1
}

// NewHamming creates a Hamming window spanning width.
func NewHamming(width time.Duration, sps uint32) *Window {
	n := windowSize(width, sps)
	w := make([]float32, n)
	for i := range w {
		w[i] = float32(0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return &Window{w: w}
}

// NewBlackman creates a Blackman window spanning width.
func NewBlackman(width time.Duration, sps uint32) *Window {
	n := windowSize(width, sps)
	w := make([]float32, n)
	for i := range w {
		x := float64(i) / float64(n)
		w[i] = float32(0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x))
	}
	return &Window{w: w}
}

// NewGaussian creates a Gaussian window with standard deviation sigma
// (in points), normalized to a peak of 1.
func NewGaussian(sigma float64) *Window {
	n := int(math.Ceil(sigma*3))*2 + 1
	half := n / 2
	s := 2 * sigma * sigma

	v := make([]float64, n)
	peak := 0.0
	for i := range v {
		mid := float64(i - half)
		v[i] = sigma / math.Sqrt(2*math.Pi) * math.Exp(-mid*mid/s)
		peak = math.Max(peak, v[i])
	}

	w := make([]float32, n)
	for i := range w {
		w[i] = float32(v[i] / peak)
	}
	return &Window{w: w}
}

// NewGaussianWidth creates a Gaussian window spanning roughly width, with
// three standard deviations on each side of the center.
func NewGaussianWidth(width time.Duration, sps uint32) *Window {
	size := width.Seconds()*float64(sps) + 1
	return NewGaussian((size / 2) / 3)
}

// WindowIterator plays a window once per Start. When idle it returns the
// first point of the table.
type WindowIterator struct {
	window *Window
	i      int
}

// NewWindowIterator creates an idle iterator over w.
func NewWindowIterator(w *Window) *WindowIterator {
	return &WindowIterator{window: w, i: w.Size()}
}

// Start rewinds the iterator to the beginning of the window.
func (it *WindowIterator) Start() { it.i = 0 }

// Stop returns the iterator to idle.
func (it *WindowIterator) Stop() { it.i = it.window.Size() }

// Running reports whether the window is still playing.
func (it *WindowIterator) Running() bool { return it.i < it.window.Size() }

// Next returns the current point and advances.
func (it *WindowIterator) Next() float32 {
	if it.i >= it.window.Size() {
		return it.window.w[0]
	}
	r := it.window.w[it.i]
	it.i++
	return r
}
