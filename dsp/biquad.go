// SPDX-License-Identifier: EPL-2.0

package dsp

import "math"

// butterworthQ gives a maximally flat 2nd-order response.
const butterworthQ = 0.7071067811865476

// Biquad is a direct form I two-pole, two-zero filter.
type Biquad struct {
	b0, b1, b2 float32
	a1, a2     float32

	x1, x2 float32
	y1, y2 float32
}

// maxCutoff keeps cutoffs below Nyquist.
func maxCutoff(f Frequency, sps uint32) float64 {
	limit := 0.49 * float64(sps)
	if float64(f) > limit {
		return limit
	}
	return float64(f)
}

// NewLowpass creates a 2nd-order Butterworth lowpass filter.
func NewLowpass(cutoff Frequency, sps uint32) *Biquad {
	w0 := 2 * math.Pi * maxCutoff(cutoff, sps) / float64(sps)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * butterworthQ)
	inv := 1 / (1 + alpha)

	return &Biquad{
		b0: float32((1 - cw) * 0.5 * inv),
		b1: float32((1 - cw) * inv),
		b2: float32((1 - cw) * 0.5 * inv),
		a1: float32(-2 * cw * inv),
		a2: float32((1 - alpha) * inv),
	}
}

// NewHighpass creates a 2nd-order Butterworth highpass filter.
func NewHighpass(cutoff Frequency, sps uint32) *Biquad {
	w0 := 2 * math.Pi * maxCutoff(cutoff, sps) / float64(sps)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * butterworthQ)
	inv := 1 / (1 + alpha)

	return &Biquad{
		b0: float32((1 + cw) * 0.5 * inv),
		b1: float32(-(1 + cw) * inv),
		b2: float32((1 + cw) * 0.5 * inv),
		a1: float32(-2 * cw * inv),
		a2: float32((1 - alpha) * inv),
	}
}

// Step filters one sample.
func (b *Biquad) Step(x float32) float32 {
	y := b.b0*x + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2
	b.x2, b.x1 = b.x1, x
	b.y2, b.y1 = b.y1, y
	return y
}

// Reset clears the filter history.
func (b *Biquad) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}

// DCBlock is a one-pole, one-zero highpass removing offset and drift.
type DCBlock struct {
	pole   float32
	x1, y1 float32
}

// NewDCBlock creates a DC blocker with its corner near cutoff.
func NewDCBlock(cutoff Frequency, sps uint32) *DCBlock {
	pole := 1 - 2*math.Pi*float64(cutoff)/float64(sps)
	if pole < 0 {
		pole = 0
	}
	return &DCBlock{pole: float32(pole)}
}

// Step filters one sample.
func (d *DCBlock) Step(x float32) float32 {
	y := x - d.x1 + d.pole*d.y1
	d.x1 = x
	d.y1 = y
	return y
}

// Reset clears the filter history.
func (d *DCBlock) Reset() { d.x1, d.y1 = 0, 0 }
