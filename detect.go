// SPDX-License-Identifier: EPL-2.0

package noteonset

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ik5/noteonset/audio"
	"github.com/ik5/noteonset/detector"
)

// ErrPartialFrame is returned when a stream ends inside a sample frame.
var ErrPartialFrame = errors.New("stream ended inside a sample frame")

// Onset is a note start found in a stream.
type Onset struct {
	// Channel is the source channel, or 0 for a mono mix.
	Channel int
	// Frame is the index of the sample frame where the onset was accepted.
	Frame int64
	// Time is Frame expressed as a stream offset.
	Time time.Duration
	// Strength is the detector output at the onset in the configured
	// detector.Shape: the attack magnitude, or attack minus decay.
	Strength float32
}

// DetectOnsets mixes src down to mono and runs a single detector over it.
//
// cfg.SampleRate is replaced by the rate of src. Samples are read bufferSize
// frames at a time; a non-positive bufferSize uses src.BufSize().
func DetectOnsets(src audio.Source, cfg detector.Config, bufferSize int) ([]Onset, error) {
	onsets, err := detect(audio.NewMonoMixer(src), cfg, bufferSize)
	if err != nil {
		return nil, err
	}
	return onsets[0], nil
}

// DetectOnsetsPerChannel runs one independent detector per channel of src and
// returns the onsets of each channel in channel order.
func DetectOnsetsPerChannel(src audio.Source, cfg detector.Config, bufferSize int) ([][]Onset, error) {
	return detect(src, cfg, bufferSize)
}

func detect(src audio.Source, cfg detector.Config, bufferSize int) ([][]Onset, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, audio.ErrNoChannels
	}
	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d", detector.ErrInvalidSampleRate, src.SampleRate())
	}
	if bufferSize <= 0 {
		bufferSize = src.BufSize()
	}
	if bufferSize <= 0 {
		return nil, fmt.Errorf("%w: %d", audio.ErrInvalidBufferSize, bufferSize)
	}

	cfg.SampleRate = uint32(src.SampleRate())
	dets := make([]*detector.Detector, channels)
	for ch := range dets {
		d, err := detector.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating detector: %w", err)
		}
		dets[ch] = d
	}

	rate := int64(src.SampleRate())
	out := make([][]Onset, channels)
	buf := make([]float32, bufferSize*channels)

	var (
		frame int64
		carry int
	)
	for {
		read, err := src.ReadSamples(buf[carry:])
		n := carry + read
		frames := n / channels
		for f := range frames {
			for ch, d := range dets {
				info := d.Step(buf[f*channels+ch])
				if !info.Onset {
					continue
				}
				out[ch] = append(out[ch], Onset{
					Channel:  ch,
					Frame:    frame,
					Time:     time.Duration(frame * int64(time.Second) / rate),
					Strength: info.Value(cfg.Shape),
				})
			}
			frame++
		}
		// a read may end inside a frame; keep the tail for the next one
		carry = copy(buf, buf[frames*channels:n])

		if err != nil && !errors.Is(err, io.EOF) {
			return out, fmt.Errorf("reading samples at frame %d: %w", frame, err)
		}
		if err != nil || read == 0 {
			if carry > 0 {
				return out, fmt.Errorf("%w: %d trailing samples", ErrPartialFrame, carry)
			}
			return out, nil
		}
	}
}
