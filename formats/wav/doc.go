// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding is built on github.com/go-audio/wav and accepts integer PCM at
// 8, 16, 24 and 32 bits with any channel count and sample rate:
//
//	file, _ := os.Open("take.wav")
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples are delivered interleaved as float32 in [-1.0, 1.0].
//
// WriteWAV16 writes interleaved 16-bit PCM with any channel count, which is
// what the diagnostics renderer produces:
//
//	err := wav.WriteWAV16(file, 44100, 2, samples)
//
// # Error Handling
//
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrUnsupportedEncoding: floating point, compressed or odd bit depths
//   - ErrUnsupportedWavLayout: missing or inconsistent format chunk
//   - ErrInvalidChannels, ErrUnalignedSamples: bad arguments to WriteWAV16
package wav
