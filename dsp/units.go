// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"time"
)

// MinDecibel is the floor returned by FromGain for zero or negative gains.
const MinDecibel Decibel = -120

// Decibel is a level on a logarithmic scale.
type Decibel float64

// Gain converts d to a linear gain factor.
func (d Decibel) Gain() float32 {
	return float32(math.Pow(10, float64(d)/20))
}

// FromGain converts a linear gain factor to decibels.
// Gains at or below zero map to MinDecibel.
func FromGain(x float32) Decibel {
	if x <= 0 {
		return MinDecibel
	}
	d := Decibel(20 * math.Log10(float64(x)))
	if d < MinDecibel {
		return MinDecibel
	}
	return d
}

// Frequency is expressed in Hz.
type Frequency float64

// Period returns the duration of a single cycle of f.
func (f Frequency) Period() time.Duration {
	if f <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(f))
}

// FrequencyOf returns the frequency whose period is d.
func FrequencyOf(d time.Duration) Frequency {
	if d <= 0 {
		return 0
	}
	return Frequency(1 / d.Seconds())
}

// Samples converts d to a sample count at sps, rounding to the nearest sample.
func Samples(d time.Duration, sps uint32) uint32 {
	if d <= 0 {
		return 0
	}
	return uint32(math.Round(d.Seconds() * float64(sps)))
}

// decayCoefficient returns exp(-1/(tau*sps)), the per-sample multiplier of a
// one-pole smoother with time constant tau.
func decayCoefficient(tau time.Duration, sps uint32) float32 {
	n := tau.Seconds() * float64(sps)
	if n <= 0 {
		return 0
	}
	return float32(math.Exp(-1 / n))
}

// Sanitize returns x, or 0 when x is NaN or infinite.
func Sanitize(x float32) float32 {
	if f := float64(x); math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return x
}
