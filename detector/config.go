// SPDX-License-Identifier: EPL-2.0

package detector

import (
	"errors"
	"fmt"
	"time"

	"github.com/ik5/noteonset/dsp"
)

// Default tuning. Levels are relative to full scale.
const (
	DefaultBlank          = 50 * time.Millisecond
	DefaultRetrigger      = 5 * time.Millisecond
	DefaultPeakDecay      = 150 * time.Millisecond
	DefaultMinThreshold   = dsp.Decibel(-27)
	DefaultDecayThreshold = dsp.Decibel(-36)
	DefaultThresholdRatio = dsp.Decibel(-21)
	DefaultRearmThreshold = dsp.Decibel(-15)
	DefaultOverrideMargin = dsp.Decibel(3)
	DefaultHighFreqWeight = dsp.Decibel(-3)
	DefaultHighFreqCutoff = dsp.Frequency(6000)

	DefaultCompressorThreshold = dsp.Decibel(-12)
	DefaultCompressorSlope     = 1.0 / 8
	DefaultMakeupGain          = dsp.Decibel(12)
	DefaultCompressorAttack    = 2 * time.Millisecond

	DefaultTaperWidth = 80 * time.Millisecond

	DefaultGateDecay            = 50 * time.Millisecond
	DefaultGateAttackThreshold  = dsp.Decibel(-20)
	DefaultGateReleaseThreshold = dsp.Decibel(-36)
	DefaultGateAttack           = 500 * time.Microsecond
	DefaultGateRelease          = time.Millisecond
)

// Time constants derived from the hold duration.
const (
	lowpassScale         = 4     // lowpass cutoff = lowpassScale / hold
	integratorScale      = 0.004 // integrator gain = integratorScale / hold
	integratorLeakScale  = 100   // integrator leak time constant = scale * hold
	compressorReleaseFor = 30    // side-chain release = scale * hold
)

// DecayPolicy selects what a decay magnitude is compared against before it
// is reported.
type DecayPolicy int

const (
	// DecayFixed drops decays below Config.DecayThreshold.
	DecayFixed DecayPolicy = iota
	// DecayAdaptive drops decays below the adaptive attack threshold.
	DecayAdaptive
)

func (p DecayPolicy) String() string {
	switch p {
	case DecayFixed:
		return "fixed"
	case DecayAdaptive:
		return "adaptive"
	}
	return fmt.Sprintf("DecayPolicy(%d)", int(p))
}

// Shape selects how callers consume a detection result.
type Shape int

const (
	// ShapeSeparated reports attack and decay as separate magnitudes.
	ShapeSeparated Shape = iota
	// ShapeCombined reports a single signed value, attack minus decay.
	ShapeCombined
)

func (s Shape) String() string {
	switch s {
	case ShapeSeparated:
		return "separated"
	case ShapeCombined:
		return "combined"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Variant names a preset combination of strategy flags.
type Variant string

const (
	// VariantBasic analyses a single band and expects the caller to gate.
	VariantBasic Variant = "basic"
	// VariantDualBand adds the high-frequency band and gates internally.
	VariantDualBand Variant = "dual-band"
	// VariantWindowed is single band with a crossfade taper and combined output.
	VariantWindowed Variant = "windowed"
)

// Variants lists the known presets.
var Variants = []Variant{VariantBasic, VariantDualBand, VariantWindowed}

// GateConfig tunes the noise gate front end.
type GateConfig struct {
	// Decay is the release time of the level envelope the gate compares.
	Decay time.Duration
	// AttackThreshold opens the gate.
	AttackThreshold dsp.Decibel
	// ReleaseThreshold closes the gate. It must not exceed AttackThreshold.
	ReleaseThreshold dsp.Decibel
	// Attack and Release smooth the gate into a click-free gain.
	Attack  time.Duration
	Release time.Duration
}

// Config holds the construction parameters of a Detector.
type Config struct {
	// Hold is the expected note period window, usually 1.1 periods of the
	// lowest fundamental of interest.
	Hold       time.Duration
	SampleRate uint32

	// BandSplit runs the high band (input minus a HighFreqCutoff lowpass)
	// and reports its envelope in Envelopes.HighFreq.
	BandSplit bool
	// HighFreqEvidence fuses the high band slope into the attack. It
	// requires BandSplit.
	HighFreqEvidence bool
	// InternalGate runs the noise gate and DC blocker inside the detector.
	InternalGate bool
	// Taper runs the crossfade window inside the post-processor.
	Taper bool

	DecayPolicy DecayPolicy
	// Shape selects what StepValue and Info.Value report.
	Shape Shape

	// Blank is the blanking pulse length after an accepted attack.
	Blank time.Duration
	// Retrigger is the minimum spacing between two reported onsets when a
	// stronger attack overrides the blanking pulse.
	Retrigger      time.Duration
	PeakDecay      time.Duration
	MinThreshold   dsp.Decibel
	DecayThreshold dsp.Decibel
	ThresholdRatio dsp.Decibel
	RearmThreshold dsp.Decibel
	OverrideMargin dsp.Decibel
	HighFreqWeight dsp.Decibel
	HighFreqCutoff dsp.Frequency

	CompressorThreshold dsp.Decibel
	CompressorSlope     float64
	MakeupGain          dsp.Decibel
	CompressorAttack    time.Duration

	TaperWidth time.Duration

	Gate GateConfig
}

// DefaultConfig returns the basic variant tuned for hold at sps.
func DefaultConfig(hold time.Duration, sps uint32) Config {
	return Config{
		Hold:       hold,
		SampleRate: sps,

		Blank:          DefaultBlank,
		Retrigger:      DefaultRetrigger,
		PeakDecay:      DefaultPeakDecay,
		MinThreshold:   DefaultMinThreshold,
		DecayThreshold: DefaultDecayThreshold,
		ThresholdRatio: DefaultThresholdRatio,
		RearmThreshold: DefaultRearmThreshold,
		OverrideMargin: DefaultOverrideMargin,
		HighFreqWeight: DefaultHighFreqWeight,
		HighFreqCutoff: DefaultHighFreqCutoff,

		CompressorThreshold: DefaultCompressorThreshold,
		CompressorSlope:     DefaultCompressorSlope,
		MakeupGain:          DefaultMakeupGain,
		CompressorAttack:    DefaultCompressorAttack,

		TaperWidth: DefaultTaperWidth,

		Gate: GateConfig{
			Decay:            DefaultGateDecay,
			AttackThreshold:  DefaultGateAttackThreshold,
			ReleaseThreshold: DefaultGateReleaseThreshold,
			Attack:           DefaultGateAttack,
			Release:          DefaultGateRelease,
		},
	}
}

// HoldFor returns the hold window for a fundamental: 1.1 periods.
func HoldFor(f dsp.Frequency) time.Duration {
	return f.Period() * 11 / 10
}

// WithVariant returns c with the strategy flags of v applied.
func (c Config) WithVariant(v Variant) (Config, error) {
	switch v {
	case VariantBasic:
		c.BandSplit, c.HighFreqEvidence, c.InternalGate, c.Taper = false, false, false, false
		c.Shape, c.DecayPolicy = ShapeSeparated, DecayFixed
	case VariantDualBand:
		c.BandSplit, c.HighFreqEvidence, c.InternalGate, c.Taper = true, true, true, false
		c.Shape, c.DecayPolicy = ShapeSeparated, DecayFixed
	case VariantWindowed:
		c.BandSplit, c.HighFreqEvidence, c.InternalGate, c.Taper = false, false, false, true
		c.Shape, c.DecayPolicy = ShapeCombined, DecayAdaptive
	default:
		return c, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	return c, nil
}

// Validate reports every inconsistent parameter in c.
func (c Config) Validate() error {
	var errs []error

	if c.SampleRate == 0 {
		errs = append(errs, ErrInvalidSampleRate)
	}
	if c.Hold <= 0 || (c.SampleRate > 0 && dsp.Samples(c.Hold, c.SampleRate) == 0) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidHold, c.Hold))
	}

	positive := []struct {
		name string
		d    time.Duration
		need bool
	}{
		{"blank", c.Blank, true},
		{"retrigger", c.Retrigger, true},
		{"peak_decay", c.PeakDecay, true},
		{"compressor_attack", c.CompressorAttack, true},
		{"taper_width", c.TaperWidth, c.Taper},
		{"gate.decay", c.Gate.Decay, c.InternalGate},
		{"gate.attack", c.Gate.Attack, c.InternalGate},
		{"gate.release", c.Gate.Release, c.InternalGate},
	}
	for _, p := range positive {
		if p.need && p.d <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParameter, p.name, p.d))
		}
	}

	if c.CompressorSlope <= 0 || c.CompressorSlope > 1 {
		errs = append(errs, fmt.Errorf("%w: compressor_slope %v outside (0, 1]", ErrInvalidParameter, c.CompressorSlope))
	}
	if c.OverrideMargin < 0 {
		errs = append(errs, fmt.Errorf("%w: override_margin %v is negative", ErrInvalidParameter, c.OverrideMargin))
	}
	if c.HighFreqEvidence && !c.BandSplit {
		errs = append(errs, fmt.Errorf("%w: high_freq_evidence needs band_split", ErrInvalidParameter))
	}
	if c.BandSplit && c.HighFreqCutoff <= 0 {
		errs = append(errs, fmt.Errorf("%w: high_freq_cutoff must be positive", ErrInvalidParameter))
	}
	if c.InternalGate && c.Gate.ReleaseThreshold > c.Gate.AttackThreshold {
		errs = append(errs, fmt.Errorf("%w: gate release threshold %v above attack threshold %v",
			ErrInvalidParameter, c.Gate.ReleaseThreshold, c.Gate.AttackThreshold))
	}
	if c.DecayPolicy != DecayFixed && c.DecayPolicy != DecayAdaptive {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidParameter, c.DecayPolicy))
	}
	if c.Shape != ShapeSeparated && c.Shape != ShapeCombined {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidParameter, c.Shape))
	}

	return errors.Join(errs...)
}
