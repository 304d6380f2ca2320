// SPDX-License-Identifier: EPL-2.0

// Package formats bundles the decoders of its subpackages.
package formats

import (
	"github.com/ik5/noteonset/audio"
	"github.com/ik5/noteonset/formats/aiff"
	"github.com/ik5/noteonset/formats/mp3"
	"github.com/ik5/noteonset/formats/vorbis"
	"github.com/ik5/noteonset/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder and the usual
// file extensions for each.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{}, "wave")
	r.Register("aiff", aiff.Decoder{}, "aif", "aifc")
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{}, "oga")
	return r
}
