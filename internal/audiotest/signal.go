// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"math/rand/v2"
	"time"
)

// Frames converts d to a frame count at sampleRate.
func Frames(d time.Duration, sampleRate int) int {
	return int(math.Round(d.Seconds() * float64(sampleRate)))
}

// Sine renders frames samples of a sine at freq Hz with peak amp.
func Sine(sampleRate, frames int, freq float64, amp float32) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = amp * float32(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return out
}

// ToneBurst renders silence, then a sine burst, then silence again.
func ToneBurst(sampleRate int, freq float64, amp float32, before, burst, after time.Duration) []float32 {
	lead := Frames(before, sampleRate)
	out := make([]float32, lead, lead+Frames(burst, sampleRate)+Frames(after, sampleRate))
	out = append(out, Sine(sampleRate, Frames(burst, sampleRate), freq, amp)...)
	return append(out, make([]float32, Frames(after, sampleRate))...)
}

// Click is a Hann-windowed sine burst of length d.
func Click(sampleRate int, freq float64, amp float32, d time.Duration) []float32 {
	out := Sine(sampleRate, Frames(d, sampleRate), freq, amp)
	n := float64(len(out))
	for i := range out {
		out[i] *= float32(0.5 * (1 - math.Cos(2*math.Pi*float64(i)/n)))
	}
	return out
}

// Mix adds src into dst starting at frame at, clipping to the length of dst.
func Mix(dst []float32, at int, src []float32) {
	for i, v := range src {
		if at+i >= len(dst) {
			return
		}
		dst[at+i] += v
	}
}

// Noise renders uniform white noise in [-amp, amp). Equal seeds give equal
// output.
func Noise(frames int, amp float32, seed uint64) []float32 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float32, frames)
	for i := range out {
		out[i] = amp * (2*r.Float32() - 1)
	}
	return out
}

// Interleave merges per-channel slices of equal length into one buffer.
func Interleave(chans ...[]float32) []float32 {
	if len(chans) == 0 {
		return nil
	}
	n := len(chans[0])
	out := make([]float32, n*len(chans))
	for i := range n {
		for ch, c := range chans {
			out[i*len(chans)+ch] = c[i]
		}
	}
	return out
}
