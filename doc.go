// SPDX-License-Identifier: EPL-2.0

// Package noteonset finds note onsets in decoded audio streams.
//
// The heavy lifting lives in the subpackages:
//   - detector: the sample-synchronous onset and decay detector
//   - dsp: the filters, envelopes and timers it is built from
//   - audio: the streaming Source abstraction and decoder registry
//   - formats/{wav,aiff,mp3,vorbis}: decoders producing audio.Source
//
// This package ties them together for the common batch case:
//
//	src, err := formats.NewRegistry().Open("take.wav")
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	cfg, _ := detector.DefaultConfig(detector.HoldFor(82.41), 0).WithVariant(detector.VariantDualBand)
//	onsets, err := noteonset.DetectOnsets(src, cfg, 4096)
//	for _, o := range onsets {
//	    fmt.Println(o.Time, o.Strength)
//	}
//
// DetectOnsets analyses a mono mix. DetectOnsetsPerChannel runs an
// independent detector per channel; detectors never share state.
//
// For real-time use, drive a detector.Detector directly, one Step per
// sample.
package noteonset
