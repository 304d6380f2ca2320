// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
)

// Source is a test helper serving interleaved samples from memory.
// It implements audio.Source without importing it to avoid cycles.
type Source struct {
	sampleRate int
	channels   int
	samples    []float32
	pos        int
	closed     bool
}

// NewSource wraps interleaved samples. len(samples) should be a multiple of
// channels.
func NewSource(sampleRate, channels int, samples []float32) *Source {
	return &Source{sampleRate: sampleRate, channels: channels, samples: samples}
}

// NewFuncSource renders frames frames of gen into a source. gen receives the
// frame index and channel.
func NewFuncSource(sampleRate, channels, frames int, gen func(frame, channel int) float32) *Source {
	s := make([]float32, frames*channels)
	for f := range frames {
		for ch := range channels {
			s[f*channels+ch] = gen(f, ch)
		}
	}
	return NewSource(sampleRate, channels, s)
}

// NewSilentSource creates a source of frames zero frames.
func NewSilentSource(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, make([]float32, frames*channels))
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

// Rewind restarts reading from the first frame.
func (s *Source) Rewind() { s.pos = 0 }

// ReadSamples copies whole frames into dst.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}

	n := (len(dst) / s.channels) * s.channels
	n = copy(dst[:n], s.samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.samples) {
		return n, io.EOF
	}
	return n, nil
}
