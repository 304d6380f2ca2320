// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/noteonset/internal/audiotest"
)

func TestMonoMixer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		values   []float32
		want     float32
	}{
		{"mono", 1, []float32{0.5}, 0.5},
		{"stereo", 2, []float32{0.4, 0.6}, 0.5},
		{"three channels", 3, []float32{0.3, 0.6, 0.9}, 0.6},
		{"quad cancels", 4, []float32{1, -1, 0.5, -0.5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewFuncSource(8000, tt.channels, 100, func(_, ch int) float32 {
				return tt.values[ch]
			})
			m := NewMonoMixer(src)
			if m.Channels() != 1 || m.SampleRate() != 8000 {
				t.Fatalf("mixer reports %d ch at %d Hz", m.Channels(), m.SampleRate())
			}

			buf := make([]float32, 32)
			n, err := m.ReadSamples(buf)
			if err != nil || n != 32 {
				t.Fatalf("ReadSamples() = %d, %v; want 32, nil", n, err)
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Fatalf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_DrainsToEOF(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 1000)
	m := NewMonoMixer(src)

	buf := make([]float32, 300)
	total := 0
	for {
		n, err := m.ReadSamples(buf)
		total += n
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	if total != 1000 {
		t.Errorf("mixed %d frames, want 1000", total)
	}

	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the wrapped source")
	}
}

func TestMonoMixer_EmptyDst(t *testing.T) {
	t.Parallel()

	m := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 10))
	if n, err := m.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func BenchmarkMonoMixer_Stereo(b *testing.B) {
	in := audiotest.Noise(2*4096, 1, 1)
	src := audiotest.NewSource(44100, 2, in)
	m := NewMonoMixer(src)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		src.Rewind()
		_, _ = m.ReadSamples(buf)
	}
}
