// SPDX-License-Identifier: EPL-2.0

package detector

// Info is the per-sample detection result.
type Info struct {
	// Attack is the debounced onset strength, zero when no onset evidence
	// passed the adaptive threshold.
	Attack float32
	// Decay is the magnitude of a falling transient.
	Decay float32
	// Ready mirrors the peak hold sync flag: true on the sample where the
	// envelope window closed.
	Ready bool
	// Onset is true on the sample where a new attack was accepted.
	Onset bool
	// Taper is the crossfade envelope, only produced when Config.Taper is set.
	Taper float32
}

// Combined returns the signed single-value form of the result: positive for
// attacks, negative for decays.
func (i Info) Combined() float32 {
	return i.Attack - i.Decay
}

// Value returns the result in the given output shape: the signed combined
// value for ShapeCombined, the attack magnitude otherwise.
func (i Info) Value(s Shape) float32 {
	if s == ShapeCombined {
		return i.Combined()
	}
	return i.Attack
}

// Features are the raw transient magnitudes fed to the post-processor.
type Features struct {
	Attack   float32
	Decay    float32
	HighFreq float32
	Sync     bool
}

// Envelopes exposes the peak hold outputs of a detector for diagnostics.
type Envelopes struct {
	Positive float32
	Negative float32
	HighFreq float32
}
