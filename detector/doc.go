// SPDX-License-Identifier: EPL-2.0

// Package detector implements a sample-synchronous note onset and decay
// detector for monophonic instrument audio.
//
// A Detector consumes one sample per call and reports, for that sample, the
// strength of any attack or decay transient and whether a new onset was
// accepted. The pipeline is:
//
//	[noise gate + DC block] -> lowpass -> leaky integrator -> compressor
//	  -> peak hold (+/-) -> central difference -> post-processor
//
// with an optional high band (input minus a 6 kHz lowpass, Config.BandSplit)
// whose slope counts as broadband attack evidence when
// Config.HighFreqEvidence is set. The post-processor keeps an adaptive
// threshold and a blanking pulse that suppresses the tail of an accepted
// attack unless a clearly stronger one arrives.
//
// Three presets select the optional stages:
//
//   - basic: single band, gate supplied by the caller through StepGated
//   - dual-band: high band evidence plus an internal noise gate
//   - windowed: single band with a crossfade taper and combined output
//
// Basic usage:
//
//	cfg, _ := detector.DefaultConfig(detector.HoldFor(82.41), 44100).WithVariant(detector.VariantDualBand)
//	d, err := detector.New(cfg)
//	if err != nil {
//	    return err
//	}
//	for _, s := range samples {
//	    if info := d.Step(s); info.Onset {
//	        // new note
//	    }
//	}
//
// A Detector holds per-stream state and must not be shared between
// goroutines. Use one instance per channel.
package detector
