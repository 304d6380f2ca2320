// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"testing"
	"time"
)

// TestStages_ZeroAllocs verifies that stepping never allocates.
func TestStages_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	const sps = 44100
	m := NewMonostable(50*time.Millisecond, sps)
	pe := NewPeakEnvelopeFollower(150*time.Millisecond, sps)
	ef := NewEnvelopeFollower(2*time.Millisecond, 33*time.Millisecond, sps)
	ph := NewPeakHold(1100*time.Microsecond, sps)
	c := NewCompressor(-12, 1.0/8)
	var d CentralDifference
	lp := NewLowpass(3636, sps)
	dc := NewDCBlock(900, sps)
	wc := NewWindowComparator(-36, -20)
	it := NewWindowIterator(NewBlackman(80*time.Millisecond, sps))

	x := float32(0.25)
	allocs := testing.AllocsPerRun(1000, func() {
		y := lp.Step(dc.Step(x))
		y *= c.Step(FromGain(ef.Step(y)))
		h, _ := ph.Step(y)
		m.Trigger(wc.Step(pe.Step(d.Step(h))))
		it.Next()
	})

	if allocs > 0 {
		t.Errorf("stages allocated %v times per sample, want 0", allocs)
	}
}

func BenchmarkBiquad(b *testing.B) {
	lp := NewLowpass(1000, 44100)
	var y float32

	b.ResetTimer()
	b.ReportAllocs()

	for i := range b.N {
		y = lp.Step(float32(i&1) - 0.5)
	}
	_ = y
}

func BenchmarkPeakHold(b *testing.B) {
	ph := NewPeakHold(1100*time.Microsecond, 44100)
	var y float32

	b.ResetTimer()
	b.ReportAllocs()

	for i := range b.N {
		y, _ = ph.Step(float32(i % 97))
	}
	_ = y
}
