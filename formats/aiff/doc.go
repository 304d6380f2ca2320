// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding on top
// of github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is supported, with any channel count
// and sample rate:
//
//	file, _ := os.Open("take.aif")
//	src, err := aiff.Decoder{}.Decode(file)
//
// Samples are delivered interleaved as float32 in [-1.0, 1.0]. Readers that
// cannot seek are buffered in memory first.
package aiff
