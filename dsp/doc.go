// SPDX-License-Identifier: EPL-2.0

// Package dsp provides the per-sample signal processing stages used by the
// note detector.
//
// Every stage is a small value that owns its state exclusively and is advanced
// by a single Step call per input sample. Coefficients and window tables are
// computed at construction time, so stepping never allocates:
//
//	env := dsp.NewPeakEnvelopeFollower(150*time.Millisecond, 44100)
//	for _, s := range samples {
//	    peak := env.Step(s)
//	    _ = peak
//	}
//
// # Units
//
// Durations are plain time.Duration values and are converted to sample
// counts with Samples, which rounds to the nearest sample. Levels are
// expressed with the Decibel type:
//
//	threshold := dsp.Decibel(-27).Gain() // 0.0447
//	level := dsp.FromGain(0.5)           // -6.02 dB
//
// Frequencies use the Frequency type (Hz); Frequency.Period and FrequencyOf
// convert between a frequency and its period.
//
// # Determinism
//
// Stage state is kept in float32 and every Step evaluates its arithmetic in a
// fixed order, so identical input and configuration produce bit-identical
// output. Constructors expect a positive sample rate and positive durations;
// validation is the caller's job (see the detector package).
//
// # Non-finite input
//
// Recursive stages latch a NaN forever. Sanitize replaces non-finite samples
// with zero and should be applied before a sample enters any stage.
package dsp
