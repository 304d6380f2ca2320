// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a sample in [-1, 1] to 16-bit PCM, clipping out of
// range values. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	if math.IsNaN(float64(x)) {
		return 0
	}
	x = Clamp(x, -1, 1)
	if x < 0 {
		return int16(x * 32768)
	}
	return int16(x * 32767)
}

// Float32sToInt16s converts src into dst and returns the number converted.
func Float32sToInt16s(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}
	return n
}

// PCMScale returns the full-scale magnitude of a signed integer sample of
// bitDepth bits.
func PCMScale(bitDepth int) float32 {
	if bitDepth <= 0 || bitDepth > 32 {
		bitDepth = 16
	}
	return float32(uint64(1) << (bitDepth - 1))
}
