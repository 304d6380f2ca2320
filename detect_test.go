// SPDX-License-Identifier: EPL-2.0

package noteonset

import (
	"errors"
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/ik5/noteonset/audio"
	"github.com/ik5/noteonset/detector"
	"github.com/ik5/noteonset/internal/audiotest"
)

const rate = 44100

func testConfig(t *testing.T) detector.Config {
	t.Helper()

	cfg, err := detector.DefaultConfig(detector.HoldFor(909), 0).WithVariant(detector.VariantDualBand)
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestDetectOnsets_ToneBurst(t *testing.T) {
	t.Parallel()

	burst := audiotest.ToneBurst(rate, 1000, 1, 500*time.Millisecond, 200*time.Millisecond, 100*time.Millisecond)
	src := audiotest.NewSource(rate, 1, burst)

	onsets, err := DetectOnsets(src, testConfig(t), 1000)
	if err != nil {
		t.Fatalf("DetectOnsets() error = %v", err)
	}
	if len(onsets) == 0 {
		t.Fatal("no onsets found")
	}

	first := onsets[0]
	start := int64(audiotest.Frames(500*time.Millisecond, rate))
	if first.Frame < start || first.Frame > start+int64(audiotest.Frames(5*time.Millisecond, rate)) {
		t.Errorf("first onset at frame %d, want within 5ms of %d", first.Frame, start)
	}
	if first.Time < 500*time.Millisecond || first.Time > 505*time.Millisecond {
		t.Errorf("first onset at %v, want about 500ms", first.Time)
	}
	if first.Strength <= 0 {
		t.Errorf("strength = %v, want positive", first.Strength)
	}
}

func TestDetectOnsets_Silence(t *testing.T) {
	t.Parallel()

	onsets, err := DetectOnsets(audiotest.NewSilentSource(rate, 2, rate), testConfig(t), 0)
	if err != nil {
		t.Fatalf("DetectOnsets() error = %v", err)
	}
	if len(onsets) != 0 {
		t.Errorf("got %d onsets in silence", len(onsets))
	}
}

func TestDetectOnsetsPerChannel(t *testing.T) {
	t.Parallel()

	left := audiotest.ToneBurst(rate, 1000, 1, 500*time.Millisecond, 200*time.Millisecond, 100*time.Millisecond)
	right := audiotest.ToneBurst(rate, 1000, 1, 200*time.Millisecond, 200*time.Millisecond, 400*time.Millisecond)
	src := audiotest.NewSource(rate, 2, audiotest.Interleave(left, right))

	got, err := DetectOnsetsPerChannel(src, testConfig(t), 777)
	if err != nil {
		t.Fatalf("DetectOnsetsPerChannel() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d channels, want 2", len(got))
	}

	starts := []time.Duration{500 * time.Millisecond, 200 * time.Millisecond}
	for ch, onsets := range got {
		if len(onsets) == 0 {
			t.Fatalf("channel %d: no onsets", ch)
		}
		o := onsets[0]
		if o.Channel != ch {
			t.Errorf("channel %d: onset tagged with channel %d", ch, o.Channel)
		}
		if o.Time < starts[ch] || o.Time > starts[ch]+5*time.Millisecond {
			t.Errorf("channel %d: first onset at %v, want near %v", ch, o.Time, starts[ch])
		}
	}
}

func TestDetectOnsets_Errors(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)

	if _, err := DetectOnsets(audiotest.NewSilentSource(0, 1, 10), cfg, 16); !errors.Is(err, detector.ErrInvalidSampleRate) {
		t.Errorf("zero rate: error = %v", err)
	}
	if _, err := DetectOnsetsPerChannel(audiotest.NewSilentSource(rate, 0, 10), cfg, 16); !errors.Is(err, audio.ErrNoChannels) {
		t.Errorf("no channels: error = %v", err)
	}

	cfg.Hold = 0
	if _, err := DetectOnsets(audiotest.NewSilentSource(rate, 1, 10), cfg, 16); !errors.Is(err, detector.ErrInvalidHold) {
		t.Errorf("zero hold: error = %v", err)
	}
}

// chunkedSource returns at most chunk samples per read, ignoring frame
// boundaries.
type chunkedSource struct {
	rate, channels, chunk int
	samples               []float32
}

func (s *chunkedSource) SampleRate() int { return s.rate }
func (s *chunkedSource) Channels() int   { return s.channels }
func (s *chunkedSource) BufSize() int    { return 256 }
func (s *chunkedSource) Close() error    { return nil }

func (s *chunkedSource) ReadSamples(dst []float32) (int, error) {
	if len(s.samples) == 0 {
		return 0, io.EOF
	}
	n := copy(dst[:min(len(dst), s.chunk)], s.samples)
	s.samples = s.samples[n:]
	return n, nil
}

func TestDetectOnsetsPerChannel_UnalignedReads(t *testing.T) {
	t.Parallel()

	left := audiotest.ToneBurst(rate, 1000, 1, 500*time.Millisecond, 200*time.Millisecond, 100*time.Millisecond)
	right := audiotest.ToneBurst(rate, 1000, 1, 200*time.Millisecond, 200*time.Millisecond, 400*time.Millisecond)
	stereo := audiotest.Interleave(left, right)

	want, err := DetectOnsetsPerChannel(audiotest.NewSource(rate, 2, stereo), testConfig(t), 512)
	if err != nil {
		t.Fatal(err)
	}

	for _, chunk := range []int{1, 3, 7, 1023} {
		src := &chunkedSource{rate: rate, channels: 2, chunk: chunk, samples: stereo}
		got, err := DetectOnsetsPerChannel(src, testConfig(t), 512)
		if err != nil {
			t.Fatalf("chunk %d: error = %v", chunk, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("chunk %d: onsets = %+v, want %+v", chunk, got, want)
		}
	}
}

func TestDetectOnsetsPerChannel_PartialFrame(t *testing.T) {
	t.Parallel()

	src := &chunkedSource{rate: rate, channels: 2, chunk: 5, samples: make([]float32, 2*100+1)}
	if _, err := DetectOnsetsPerChannel(src, testConfig(t), 64); !errors.Is(err, ErrPartialFrame) {
		t.Errorf("error = %v, want ErrPartialFrame", err)
	}
}

func TestDetectOnsets_StrengthShape(t *testing.T) {
	t.Parallel()

	burst := audiotest.ToneBurst(rate, 1000, 1, 500*time.Millisecond, 200*time.Millisecond, 100*time.Millisecond)

	for _, v := range detector.Variants {
		t.Run(string(v), func(t *testing.T) {
			t.Parallel()

			cfg, err := detector.DefaultConfig(detector.HoldFor(909), rate).WithVariant(v)
			if err != nil {
				t.Fatal(err)
			}
			onsets, err := DetectOnsets(audiotest.NewSource(rate, 1, burst), cfg, 0)
			if err != nil {
				t.Fatal(err)
			}

			// replay the stream to read the Info behind each onset
			d, err := detector.New(cfg)
			if err != nil {
				t.Fatal(err)
			}
			next := 0
			for i, s := range burst {
				info := d.Step(s)
				if next < len(onsets) && int64(i) == onsets[next].Frame {
					if want := info.Value(cfg.Shape); onsets[next].Strength != want {
						t.Errorf("onset %d strength = %v, want %v", next, onsets[next].Strength, want)
					}
					next++
				}
			}
			if next != len(onsets) || next == 0 {
				t.Errorf("matched %d of %d onsets", next, len(onsets))
			}
		})
	}
}
