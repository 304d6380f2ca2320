// SPDX-License-Identifier: EPL-2.0

package detector

import (
	"math"
	"time"

	"github.com/ik5/noteonset/dsp"
)

// sideChain normalizes the dynamic range of a signal: a fast attack, slow
// release envelope of the rectified input drives a compressor, and the
// resulting gain plus makeup is applied to the input.
type sideChain struct {
	env    *dsp.EnvelopeFollower
	comp   *dsp.Compressor
	makeup float32
}

func newSideChain(cfg Config) sideChain {
	return sideChain{
		env:    dsp.NewEnvelopeFollower(cfg.CompressorAttack, cfg.Hold*compressorReleaseFor, cfg.SampleRate),
		comp:   dsp.NewCompressor(cfg.CompressorThreshold, cfg.CompressorSlope),
		makeup: cfg.MakeupGain.Gain(),
	}
}

func (c sideChain) step(x float32) float32 {
	level := dsp.FromGain(c.env.Step(float32(math.Abs(float64(x)))))
	return x * c.comp.Step(level) * c.makeup
}

func (c sideChain) reset() { c.env.Reset() }

// highBand extracts the broadband residual above the top lowpass and tracks
// its transient slope.
type highBand struct {
	top  *dsp.Biquad
	comp sideChain
	hold *dsp.PeakHold
	diff dsp.CentralDifference
}

func (h *highBand) step(s float32) (float32, float32) {
	r := h.comp.step(s - h.top.Step(s))
	env, _ := h.hold.Step(float32(math.Abs(float64(r))))
	return env, h.diff.Step(env)
}

func (h *highBand) reset() {
	h.top.Reset()
	h.comp.reset()
	h.hold.Reset()
	h.diff.Reset()
}

// Detector is a sample-synchronous note onset and decay detector.
//
// Each call to Step consumes one sample and returns the detection result for
// that sample. A Detector is not safe for concurrent use; run one instance
// per channel.
type Detector struct {
	cfg Config

	gate *NoiseGate

	lp    *dsp.Biquad
	integ *dsp.Integrator
	comp  sideChain

	pos, neg   *dsp.PeakHold
	dpos, dneg dsp.CentralDifference

	high *highBand

	pp *PostProcessor

	open     bool
	env      Envelopes
	rejected uint64
}

// New creates a detector for cfg.
func New(cfg Config) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sps := cfg.SampleRate
	hold := cfg.Hold.Seconds()

	d := &Detector{
		cfg:   cfg,
		lp:    dsp.NewLowpass(dsp.Frequency(lowpassScale/hold), sps),
		integ: dsp.NewIntegrator(float32(integratorScale/hold), integratorLeak(cfg.Hold, sps)),
		comp:  newSideChain(cfg),
		pos:   dsp.NewPeakHold(cfg.Hold, sps),
		neg:   dsp.NewPeakHold(cfg.Hold, sps),
		pp:    newPostProcessor(cfg),
	}

	if cfg.InternalGate {
		d.gate = NewNoiseGate(cfg.Gate, dsp.FrequencyOf(cfg.Hold), sps)
	}
	if cfg.BandSplit {
		d.high = &highBand{
			top:  dsp.NewLowpass(cfg.HighFreqCutoff, sps),
			comp: newSideChain(cfg),
			hold: dsp.NewPeakHold(cfg.Hold, sps),
		}
	}
	return d, nil
}

func integratorLeak(hold time.Duration, sps uint32) float32 {
	return float32(math.Exp(-1 / (integratorLeakScale * hold.Seconds() * float64(sps))))
}

// Config returns the configuration the detector was built with.
func (d *Detector) Config() Config { return d.cfg }

// Step processes one sample. Without an internal gate the signal is treated
// as always active; use StepGated to supply an external gate.
func (d *Detector) Step(s float32) Info {
	return d.StepGated(s, true)
}

// StepGated processes one sample with an externally computed gate. When the
// detector runs its own noise gate, the two are combined: the signal is
// active only while both are open.
func (d *Detector) StepGated(s float32, gate bool) Info {
	if c := dsp.Sanitize(s); c != s {
		d.rejected++
		s = c
	}

	if d.gate != nil {
		var open bool
		s, open = d.gate.Step(s)
		gate = gate && open
	}
	d.open = gate

	x := d.comp.step(d.integ.Step(d.lp.Step(s)))

	e1, sync := d.pos.Step(x)
	e2, _ := d.neg.Step(-x)
	d1 := d.dpos.Step(e1)
	d2 := d.dneg.Step(e2)
	d.env.Positive, d.env.Negative = e1, e2

	var f Features
	if gate {
		f.Attack = max(d1, 0) + max(d2, 0)
		f.Decay = -(min(d1, 0) + min(d2, 0))
	}
	f.Sync = sync

	if d.high != nil {
		env, slope := d.high.step(s)
		d.env.HighFreq = env
		if gate && d.cfg.HighFreqEvidence {
			f.HighFreq = float32(math.Abs(float64(slope)))
		}
	}

	return d.pp.Step(f, gate)
}

// StepCombined processes one sample and returns the combined signed value
// (attack minus decay) and the ready flag.
func (d *Detector) StepCombined(s float32) (float32, bool) {
	info := d.Step(s)
	return info.Combined(), info.Ready
}

// StepValue processes one sample and returns the result in the configured
// output shape (see Info.Value) and the ready flag.
func (d *Detector) StepValue(s float32) (float32, bool) {
	info := d.Step(s)
	return info.Value(d.cfg.Shape), info.Ready
}

// Process runs the detector over src, writing one result per sample into
// dst. It processes min(len(src), len(dst)) samples and returns the count.
func (d *Detector) Process(dst []Info, src []float32) int {
	n := min(len(src), len(dst))
	for i := range n {
		dst[i] = d.Step(src[i])
	}
	return n
}

// Reset returns the detector to its freshly constructed state.
func (d *Detector) Reset() {
	if d.gate != nil {
		d.gate.Reset()
	}
	d.lp.Reset()
	d.integ.Reset()
	d.comp.reset()
	d.pos.Reset()
	d.neg.Reset()
	d.dpos.Reset()
	d.dneg.Reset()
	if d.high != nil {
		d.high.reset()
	}
	d.pp.Reset()
	d.open = false
	d.env = Envelopes{}
	d.rejected = 0
}

// Onset reports whether the blanking pulse is active. Its rising edge marks
// the start of a note.
func (d *Detector) Onset() bool { return d.pp.Onset() }

// AttackEnvelope returns the slow peak envelope of recent attacks.
func (d *Detector) AttackEnvelope() float32 { return d.pp.AttackEnvelope() }

// Gate reports whether the last sample was considered active.
func (d *Detector) Gate() bool { return d.open }

// Threshold returns the current adaptive attack threshold.
func (d *Detector) Threshold() float32 { return d.pp.Threshold() }

// Envelopes returns the peak hold outputs of the last sample.
func (d *Detector) Envelopes() Envelopes { return d.env }

// Rejected returns the number of non-finite samples replaced by zero.
func (d *Detector) Rejected() uint64 { return d.rejected }
