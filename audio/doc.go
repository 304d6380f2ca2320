// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming source abstraction the detector
// reads from.
//
//   - Source interface for decoded PCM input
//   - MonoMixer for channel mixing
//   - Registry for looking up decoders by format or file extension
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. ReadSamples
// returns io.EOF once the stream is exhausted:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // process buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, "wave")
//	src, err := registry.Open("take1.wav")
//
// The formats package builds a registry with every bundled decoder.
package audio
