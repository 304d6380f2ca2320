// SPDX-License-Identifier: EPL-2.0

package dsp

import "time"

// PeakEnvelopeFollower tracks a decaying maximum: y = max(x, y*coef).
type PeakEnvelopeFollower struct {
	y    float32
	coef float32
}

// NewPeakEnvelopeFollower creates a follower whose peak decays with time
// constant decay.
func NewPeakEnvelopeFollower(decay time.Duration, sps uint32) *PeakEnvelopeFollower {
	return &PeakEnvelopeFollower{coef: decayCoefficient(decay, sps)}
}

// Step feeds x and returns the new peak.
func (p *PeakEnvelopeFollower) Step(x float32) float32 {
	p.y = max(x, p.y*p.coef)
	return p.y
}

// Value returns the current peak without advancing.
func (p *PeakEnvelopeFollower) Value() float32 { return p.y }

// Reset clears the peak.
func (p *PeakEnvelopeFollower) Reset() { p.y = 0 }

// EnvelopeFollower is an asymmetric one-pole smoother. It moves toward the
// input with the attack coefficient when the input is above the output and
// with the release coefficient otherwise.
type EnvelopeFollower struct {
	y       float32
	attack  float32
	release float32
}

// NewEnvelopeFollower creates a follower with the given attack and release
// time constants.
func NewEnvelopeFollower(attack, release time.Duration, sps uint32) *EnvelopeFollower {
	return &EnvelopeFollower{
		attack:  decayCoefficient(attack, sps),
		release: decayCoefficient(release, sps),
	}
}

// Step feeds x and returns the smoothed value.
func (e *EnvelopeFollower) Step(x float32) float32 {
	coef := e.release
	if x > e.y {
		coef = e.attack
	}
	e.y = x + coef*(e.y-x)
	return e.y
}

// Value returns the current output without advancing.
func (e *EnvelopeFollower) Value() float32 { return e.y }

// Reset clears the output.
func (e *EnvelopeFollower) Reset() { e.y = 0 }
