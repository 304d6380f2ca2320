// SPDX-License-Identifier: EPL-2.0

package detector

import (
	"github.com/ik5/noteonset/dsp"
)

// PostProcessor turns raw transient magnitudes into debounced onsets.
//
// The attack threshold follows a slow peak envelope of recent accepted
// attacks, scaled by Config.ThresholdRatio and floored at
// Config.MinThreshold. An accepted attack starts the blanking pulse; while
// blanked, only an attack stronger than the held peak by
// Config.OverrideMargin gets through and restarts the pulse.
type PostProcessor struct {
	blank   *dsp.Monostable
	retrig  *dsp.Monostable
	peakEnv *dsp.PeakEnvelopeFollower

	peak      float32
	threshold float32
	last      float32

	minThreshold   float32
	decayThreshold float32
	ratio          float32
	rearm          float32
	margin         float32
	highFreqWeight float32
	policy         DecayPolicy

	taper  [2]*dsp.WindowIterator
	tapers bool
}

// NewPostProcessor creates a post-processor from the thresholds and timing
// of cfg.
func NewPostProcessor(cfg Config) (*PostProcessor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newPostProcessor(cfg), nil
}

func newPostProcessor(cfg Config) *PostProcessor {
	p := &PostProcessor{
		blank:          dsp.NewMonostable(cfg.Blank, cfg.SampleRate),
		retrig:         dsp.NewMonostable(cfg.Retrigger, cfg.SampleRate),
		peakEnv:        dsp.NewPeakEnvelopeFollower(cfg.PeakDecay, cfg.SampleRate),
		minThreshold:   cfg.MinThreshold.Gain(),
		decayThreshold: cfg.DecayThreshold.Gain(),
		ratio:          cfg.ThresholdRatio.Gain(),
		rearm:          cfg.RearmThreshold.Gain(),
		margin:         cfg.OverrideMargin.Gain(),
		highFreqWeight: cfg.HighFreqWeight.Gain(),
		policy:         cfg.DecayPolicy,
	}
	p.threshold = p.rearm

	if cfg.Taper {
		w := dsp.NewBlackman(cfg.TaperWidth, cfg.SampleRate)
		p.taper[0] = dsp.NewWindowIterator(w)
		p.taper[1] = dsp.NewWindowIterator(w)
		p.tapers = true
	}
	return p
}

// Step processes the features of one sample.
func (p *PostProcessor) Step(f Features, gate bool) Info {
	attack := p.fuse(f)
	attack, decay := p.thresholds(attack, f.Decay, gate)
	attack, onset := p.debounce(attack, gate)

	info := Info{
		Attack: attack,
		Decay:  decay,
		Ready:  f.Sync,
		Onset:  onset,
	}
	if p.tapers {
		info.Taper = p.crossfade(onset)
	}
	return info
}

// fuse merges the evidence for an attack. A strong decay of the previous
// note counts as a candidate attack (legato), and so does a broadband
// transient in the high band.
func (p *PostProcessor) fuse(f Features) float32 {
	attack := max(f.Attack, f.Decay)
	return max(attack, f.HighFreq*p.highFreqWeight)
}

// thresholds updates the adaptive threshold and drops magnitudes too small
// to matter.
func (p *PostProcessor) thresholds(attack, decay float32, gate bool) (float32, float32) {
	if !gate {
		return 0, 0
	}

	p.threshold = max(p.minThreshold, p.peakEnv.Value()*p.ratio)

	limit := p.decayThreshold
	if p.policy == DecayAdaptive {
		limit = p.threshold
	}
	if decay < limit {
		decay = 0
	}
	if attack < p.threshold {
		attack = 0
	}
	return attack, decay
}

// debounce applies the blanking pulse and reports whether attack starts a
// new onset.
func (p *PostProcessor) debounce(attack float32, gate bool) (float32, bool) {
	if !gate {
		p.blank.Stop()
		p.retrig.Stop()
		p.peak = 0
		p.last = 0
		p.peakEnv.Reset()
		p.threshold = p.rearm
		return 0, false
	}

	p.retrig.Trigger(false)
	blanked := p.blank.Active()
	started := p.blank.Trigger(attack > p.threshold)

	onset := false
	switch {
	case blanked:
		if attack > p.peak*p.margin {
			p.blank.Start()
			p.peak = attack
			// a restart directly after an accepted sample, or too close to
			// the previous onset, belongs to the same note
			onset = p.last == 0 && !p.retrig.Active()
		} else {
			attack = 0
		}
	case started:
		p.blank.Start()
		onset = true
	default:
		p.peak = 0
	}

	if onset {
		p.retrig.Start()
	}
	p.peakEnv.Step(p.peak)
	p.last = attack
	return attack, onset
}

// crossfade plays the taper window on every onset, overlapping a second
// copy when the first is still running.
func (p *PostProcessor) crossfade(onset bool) float32 {
	if onset {
		if !p.taper[0].Running() {
			p.taper[0].Start()
		} else {
			p.taper[1].Start()
		}
	}
	return p.taper[0].Next() + p.taper[1].Next()
}

// Reset disarms the pulse and returns the threshold to its re-arm value.
func (p *PostProcessor) Reset() {
	p.blank.Stop()
	p.retrig.Stop()
	p.peakEnv.Reset()
	p.peak, p.last = 0, 0
	p.threshold = p.rearm
	if p.tapers {
		p.taper[0].Stop()
		p.taper[1].Stop()
	}
}

// Onset reports whether the blanking pulse is active.
func (p *PostProcessor) Onset() bool { return p.blank.Active() }

// AttackEnvelope returns the slow peak envelope of accepted attacks.
func (p *PostProcessor) AttackEnvelope() float32 { return p.peakEnv.Value() }

// Threshold returns the current attack threshold.
func (p *PostProcessor) Threshold() float32 { return p.threshold }

// Peak returns the attack strength held for the override comparison.
func (p *PostProcessor) Peak() float32 { return p.peak }
