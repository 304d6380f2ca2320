// SPDX-License-Identifier: EPL-2.0

package dsp

// Compressor is a static gain-reduction curve. Levels below the threshold
// pass unchanged; above it the excess is scaled by slope (1/8 is 8:1).
type Compressor struct {
	threshold Decibel
	slope     float64
}

// NewCompressor creates a compressor with the given threshold and slope.
func NewCompressor(threshold Decibel, slope float64) *Compressor {
	return &Compressor{threshold: threshold, slope: slope}
}

// Reduction returns the gain change in dB for a side-chain level.
func (c *Compressor) Reduction(level Decibel) Decibel {
	if level <= c.threshold {
		return 0
	}
	return Decibel(float64(level-c.threshold) * (c.slope - 1))
}

// Step returns the linear gain for a side-chain level.
func (c *Compressor) Step(level Decibel) float32 {
	return c.Reduction(level).Gain()
}
