// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/noteonset/audio"
	"github.com/jfreymuth/oggvorbis"
)

// sampleReader is the part of oggvorbis.Reader the source needs.
type sampleReader interface {
	Read([]float32) (int, error)
}

type source struct {
	dec        sampleReader
	sampleRate int
	channels   int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	// the decoder fills whole frames of interleaved samples
	n := (len(dst) / s.channels) * s.channels
	if n == 0 {
		return 0, nil
	}

	read, err := s.dec.Read(dst[:n])
	if err != nil && !errors.Is(err, io.EOF) {
		return read, fmt.Errorf("decoding vorbis: %w", err)
	}
	if read == 0 && err == nil {
		return 0, io.EOF
	}
	return read, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening ogg vorbis stream: %w", err)
	}
	if dec.Channels() <= 0 {
		return nil, fmt.Errorf("opening ogg vorbis stream: %w", audio.ErrNoChannels)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
