// SPDX-License-Identifier: EPL-2.0

package dsp

// CentralDifference is a 3-tap differentiator: y[n] = (x[n] - x[n-2]) / 2.
type CentralDifference struct {
	x1, x2 float32
}

// Step feeds x and returns the slope estimate.
func (d *CentralDifference) Step(x float32) float32 {
	y := (x - d.x2) * 0.5
	d.x2 = d.x1
	d.x1 = x
	return y
}

// Reset clears the history.
func (d *CentralDifference) Reset() { d.x1, d.x2 = 0, 0 }

// Integrator is a leaky accumulator: y = gain*x + leak*y.
// A leak of 1 makes it a pure integrator.
type Integrator struct {
	y    float32
	gain float32
	leak float32
}

// NewIntegrator creates an integrator with the given input gain and leak.
func NewIntegrator(gain, leak float32) *Integrator {
	return &Integrator{gain: gain, leak: leak}
}

// Step feeds x and returns the accumulated value.
func (i *Integrator) Step(x float32) float32 {
	i.y = i.gain*x + i.leak*i.y
	return i.y
}

// Value returns the accumulated value without advancing.
func (i *Integrator) Value() float32 { return i.y }

// Reset clears the accumulator.
func (i *Integrator) Reset() { i.y = 0 }
