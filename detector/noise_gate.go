// SPDX-License-Identifier: EPL-2.0

package detector

import (
	"math"

	"github.com/ik5/noteonset/dsp"
)

// NoiseGate decides whether the input is above the noise floor and fades the
// signal in and out accordingly.
//
// A slow peak envelope of the rectified input drives a Schmitt trigger
// (GateConfig.AttackThreshold to open, GateConfig.ReleaseThreshold to close).
// The boolean gate is smoothed into a gain to avoid clicks, and the gated
// signal passes through a DC blocker.
type NoiseGate struct {
	level  *dsp.PeakEnvelopeFollower
	cmp    *dsp.WindowComparator
	smooth *dsp.EnvelopeFollower
	dc     *dsp.DCBlock
	open   bool
}

// NewNoiseGate creates a gate at sps. dcCutoff sets the DC blocker corner.
func NewNoiseGate(cfg GateConfig, dcCutoff dsp.Frequency, sps uint32) *NoiseGate {
	return &NoiseGate{
		level:  dsp.NewPeakEnvelopeFollower(cfg.Decay, sps),
		cmp:    dsp.NewWindowComparator(cfg.ReleaseThreshold, cfg.AttackThreshold),
		smooth: dsp.NewEnvelopeFollower(cfg.Attack, cfg.Release, sps),
		dc:     dsp.NewDCBlock(dcCutoff, sps),
	}
}

// Step gates s and returns the conditioned sample and the gate state.
func (g *NoiseGate) Step(s float32) (float32, bool) {
	g.open = g.cmp.Step(g.level.Step(float32(math.Abs(float64(s)))))

	var target float32
	if g.open {
		target = 1
	}
	return g.dc.Step(s * g.smooth.Step(target)), g.open
}

// Open returns the last gate state.
func (g *NoiseGate) Open() bool { return g.open }

// Level returns the envelope the gate compares against its thresholds.
func (g *NoiseGate) Level() float32 { return g.level.Value() }

// Reset closes the gate and clears its envelopes.
func (g *NoiseGate) Reset() {
	g.level.Reset()
	g.cmp.Reset()
	g.smooth.Reset()
	g.dc.Reset()
	g.open = false
}
