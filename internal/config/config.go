// SPDX-License-Identifier: EPL-2.0

// Package config defines the YAML configuration of the notedetect command.
package config

import (
	"log/slog"
	"time"

	"github.com/ik5/noteonset/detector"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l to a slog level. Unknown or empty levels map to info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Config is the root of the YAML file.
type Config struct {
	LogLevel LogLevel       `yaml:"log_level"`
	Detector DetectorConfig `yaml:"detector"`
	Output   OutputConfig   `yaml:"output"`
	Jobs     []Job          `yaml:"jobs"`
}

// DetectorConfig overrides detector defaults. Unset fields keep the default.
// Durations are Go duration strings ("50ms"), levels are dB numbers.
type DetectorConfig struct {
	Variant detector.Variant `yaml:"variant"`

	Blank     time.Duration `yaml:"blank"`
	Retrigger time.Duration `yaml:"retrigger"`
	PeakDecay time.Duration `yaml:"peak_decay"`

	MinThreshold   *float64 `yaml:"min_threshold_db"`
	DecayThreshold *float64 `yaml:"decay_threshold_db"`
	ThresholdRatio *float64 `yaml:"threshold_ratio_db"`
	RearmThreshold *float64 `yaml:"rearm_threshold_db"`
	OverrideMargin *float64 `yaml:"override_margin_db"`

	Gate GateConfig `yaml:"gate"`
}

// GateConfig overrides the noise gate thresholds.
type GateConfig struct {
	AttackThreshold  *float64 `yaml:"attack_threshold_db"`
	ReleaseThreshold *float64 `yaml:"release_threshold_db"`
}

// OutputConfig controls the rendered WAV files.
type OutputConfig struct {
	// Dir receives one WAV file per job.
	Dir string `yaml:"dir"`
	// Diagnostics renders envelopes and onsets next to the audio.
	Diagnostics bool `yaml:"diagnostics"`
	// TaperWidth is the length of the window played on every onset.
	TaperWidth time.Duration `yaml:"taper_width"`
}

// Job is one input file and the fundamental the hold window is tuned for.
type Job struct {
	Path      string  `yaml:"path"`
	Frequency float64 `yaml:"frequency"`
}

// DefaultTaperWidth is used when output.taper_width is unset.
const DefaultTaperWidth = 100 * time.Millisecond

// Taper returns the configured taper width or DefaultTaperWidth.
func (o OutputConfig) Taper() time.Duration {
	if o.TaperWidth > 0 {
		return o.TaperWidth
	}
	return DefaultTaperWidth
}
