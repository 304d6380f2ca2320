// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"testing"
	"time"
)

func TestDecibel_Gain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		db   Decibel
		want float32
	}{
		{"unity", 0, 1},
		{"minus 20 dB", -20, 0.1},
		{"plus 20 dB", 20, 10},
		{"minus 6 dB", -6, 0.501187},
		{"plus 3 dB", 3, 1.412538},
		{"floor of threshold", -27, 0.044668},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.db.Gain()
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("Decibel(%v).Gain() = %v, want %v", tt.db, got, tt.want)
			}
		})
	}
}

func TestFromGain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gain float32
		want Decibel
	}{
		{"unity", 1, 0},
		{"tenth", 0.1, -20},
		{"ten", 10, 20},
		{"zero floors", 0, MinDecibel},
		{"negative floors", -0.5, MinDecibel},
		{"tiny floors", 1e-30, MinDecibel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FromGain(tt.gain)
			if math.Abs(float64(got-tt.want)) > 1e-4 {
				t.Errorf("FromGain(%v) = %v, want %v", tt.gain, got, tt.want)
			}
		})
	}
}

func TestDecibel_RoundTrip(t *testing.T) {
	t.Parallel()

	for db := Decibel(-60); db <= 24; db += 3 {
		got := FromGain(db.Gain())
		if math.Abs(float64(got-db)) > 1e-3 {
			t.Errorf("FromGain(Decibel(%v).Gain()) = %v", db, got)
		}
	}
}

func TestSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    time.Duration
		sps  uint32
		want uint32
	}{
		{"blank at 44.1k", 50 * time.Millisecond, 44100, 2205},
		{"hold rounds up", 1100 * time.Microsecond, 44100, 49},
		{"one second", time.Second, 48000, 48000},
		{"zero", 0, 44100, 0},
		{"negative", -time.Millisecond, 44100, 0},
		{"sub-sample rounds down", 10 * time.Microsecond, 44100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Samples(tt.d, tt.sps); got != tt.want {
				t.Errorf("Samples(%v, %d) = %d, want %d", tt.d, tt.sps, got, tt.want)
			}
		})
	}
}

func TestFrequency_Period(t *testing.T) {
	t.Parallel()

	if got := Frequency(1000).Period(); got != time.Millisecond {
		t.Errorf("Frequency(1000).Period() = %v, want 1ms", got)
	}
	if got := Frequency(0).Period(); got != 0 {
		t.Errorf("Frequency(0).Period() = %v, want 0", got)
	}
	if got := FrequencyOf(2 * time.Millisecond); math.Abs(float64(got)-500) > 1e-9 {
		t.Errorf("FrequencyOf(2ms) = %v, want 500", got)
	}
	if got := FrequencyOf(0); got != 0 {
		t.Errorf("FrequencyOf(0) = %v, want 0", got)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"finite passes", 0.5, 0.5},
		{"negative passes", -0.25, -0.25},
		{"NaN", float32(math.NaN()), 0},
		{"+Inf", float32(math.Inf(1)), 0},
		{"-Inf", float32(math.Inf(-1)), 0},
		{"max float", math.MaxFloat32, math.MaxFloat32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
