// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 decoding on top of github.com/hajimehoshi/go-mp3.
//
// The decoder always yields two interleaved channels (mono files are
// duplicated by go-mp3) as float32 in [-1.0, 1.0]:
//
//	file, _ := os.Open("take.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//
// Wrap the source in audio.NewMonoMixer to feed a single detector.
package mp3
