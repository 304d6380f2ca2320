// SPDX-License-Identifier: EPL-2.0

// Package diagnostics renders detector output as multi-channel audio for
// listening tests.
package diagnostics

import (
	"errors"
	"fmt"
	"time"

	"github.com/ik5/noteonset/detector"
	"github.com/ik5/noteonset/dsp"
	"github.com/ik5/noteonset/utils"
)

// Channel counts of the rendered output.
const (
	DemoChannels        = 2
	DiagnosticsChannels = 6
)

// ErrInvalidFundamental is returned for a non-positive fundamental.
var ErrInvalidFundamental = errors.New("invalid fundamental frequency")

// Options controls a Renderer.
type Options struct {
	// Fundamental is the lowest note of interest. It tunes the DC blocker of
	// the external noise gate.
	Fundamental dsp.Frequency
	// TaperWidth is the Blackman window played on every onset.
	TaperWidth time.Duration
	// Diagnostics adds the envelope and onset channels.
	Diagnostics bool
}

// Stats summarises a render.
type Stats struct {
	Samples int
	Onsets  int
	// Peak attack and decay after clamping to [0, 1].
	Attack float32
	Decay  float32
}

// Renderer runs a detector over mono input and produces interleaved frames:
// the raw sample, the sample shaped by a taper window started on every onset
// and, with Diagnostics, the detector envelopes and the blanking state.
type Renderer struct {
	det  *detector.Detector
	gate *detector.NoiseGate

	edge  dsp.RisingEdge
	taper [2]*dsp.WindowIterator

	channels int
	stats    Stats
}

// NewRenderer creates a renderer for cfg. When cfg has no internal gate, the
// renderer gates the input itself and passes the gate to the detector.
func NewRenderer(cfg detector.Config, opts Options) (*Renderer, error) {
	if opts.Fundamental <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFundamental, opts.Fundamental)
	}
	if opts.TaperWidth <= 0 {
		return nil, fmt.Errorf("%w: taper width %v", detector.ErrInvalidParameter, opts.TaperWidth)
	}

	det, err := detector.New(cfg)
	if err != nil {
		return nil, err
	}

	w := dsp.NewBlackman(opts.TaperWidth, cfg.SampleRate)
	r := &Renderer{
		det:      det,
		taper:    [2]*dsp.WindowIterator{dsp.NewWindowIterator(w), dsp.NewWindowIterator(w)},
		channels: DemoChannels,
	}
	if !cfg.InternalGate {
		r.gate = detector.NewNoiseGate(cfg.Gate, opts.Fundamental, cfg.SampleRate)
	}
	if opts.Diagnostics {
		r.channels = DiagnosticsChannels
	}
	return r, nil
}

// Channels returns the number of values Step writes per sample.
func (r *Renderer) Channels() int { return r.channels }

// Stats returns the totals since creation or the last Reset.
func (r *Renderer) Stats() Stats { return r.stats }

// Step processes one sample and writes Channels() values to dst.
func (r *Renderer) Step(dst []float32, s float32) {
	raw := s

	var info detector.Info
	if r.gate != nil {
		x, open := r.gate.Step(s)
		info = r.det.StepGated(x, open)
	} else {
		info = r.det.Step(s)
	}

	r.stats.Samples++
	r.stats.Attack = max(r.stats.Attack, utils.Clamp(info.Attack, 0, 1))
	r.stats.Decay = max(r.stats.Decay, utils.Clamp(info.Decay, 0, 1))

	onset := r.det.Onset()
	if r.edge.Step(onset) {
		r.stats.Onsets++
		if !r.taper[0].Running() {
			r.taper[0].Start()
		} else {
			r.taper[1].Start()
		}
	}

	dst[0] = raw
	dst[1] = (r.taper[0].Next() + r.taper[1].Next()) * raw
	if r.channels == DemoChannels {
		return
	}

	env := r.det.Envelopes()
	dst[2] = env.Positive / 3
	dst[3] = env.Negative / 3
	dst[4] = env.HighFreq / 3
	dst[5] = 0
	if onset {
		dst[5] = 0.8
	}
}

// Render processes in and returns the interleaved output frames.
func (r *Renderer) Render(in []float32) []float32 {
	out := make([]float32, len(in)*r.channels)
	for i, s := range in {
		r.Step(out[i*r.channels:(i+1)*r.channels], s)
	}
	return out
}

// Reset clears the detector, the gate and the taper state.
func (r *Renderer) Reset() {
	r.det.Reset()
	if r.gate != nil {
		r.gate.Reset()
	}
	r.edge = dsp.RisingEdge{}
	r.taper[0].Stop()
	r.taper[1].Stop()
	r.stats = Stats{}
}
