// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
//	file, _ := os.Open("take.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//
// Samples are delivered interleaved as float32 in [-1.0, 1.0].
package vorbis
