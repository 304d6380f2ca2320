// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/ik5/noteonset/detector"
	"github.com/ik5/noteonset/dsp"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated [Config].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	d := cfg.Detector
	if d.Variant != "" && !slices.Contains(detector.Variants, d.Variant) {
		errs = append(errs, fmt.Errorf("detector.variant %q is invalid; valid values: %v", d.Variant, detector.Variants))
	}
	for _, p := range []struct {
		name string
		d    time.Duration
	}{
		{"detector.blank", d.Blank},
		{"detector.retrigger", d.Retrigger},
		{"detector.peak_decay", d.PeakDecay},
		{"output.taper_width", cfg.Output.TaperWidth},
	} {
		if p.d < 0 {
			errs = append(errs, fmt.Errorf("%s %v is negative", p.name, p.d))
		}
	}
	if d.OverrideMargin != nil && *d.OverrideMargin < 0 {
		errs = append(errs, fmt.Errorf("detector.override_margin_db %v is negative", *d.OverrideMargin))
	}
	if g := d.Gate; g.AttackThreshold != nil && g.ReleaseThreshold != nil && *g.ReleaseThreshold > *g.AttackThreshold {
		errs = append(errs, fmt.Errorf("detector.gate.release_threshold_db %v is above attack_threshold_db %v",
			*g.ReleaseThreshold, *g.AttackThreshold))
	}

	for i, job := range cfg.Jobs {
		prefix := fmt.Sprintf("jobs[%d]", i)
		if job.Path == "" {
			errs = append(errs, fmt.Errorf("%s.path is required", prefix))
		}
		if job.Frequency <= 0 {
			errs = append(errs, fmt.Errorf("%s.frequency %v must be positive", prefix, job.Frequency))
		}
	}

	return errors.Join(errs...)
}

// Apply returns base with the overrides of d applied. The variant is applied
// first so explicit values win over preset flags.
func (d DetectorConfig) Apply(base detector.Config) (detector.Config, error) {
	cfg := base
	if d.Variant != "" {
		var err error
		if cfg, err = cfg.WithVariant(d.Variant); err != nil {
			return base, err
		}
	}

	if d.Blank > 0 {
		cfg.Blank = d.Blank
	}
	if d.Retrigger > 0 {
		cfg.Retrigger = d.Retrigger
	}
	if d.PeakDecay > 0 {
		cfg.PeakDecay = d.PeakDecay
	}

	setDB(&cfg.MinThreshold, d.MinThreshold)
	setDB(&cfg.DecayThreshold, d.DecayThreshold)
	setDB(&cfg.ThresholdRatio, d.ThresholdRatio)
	setDB(&cfg.RearmThreshold, d.RearmThreshold)
	setDB(&cfg.OverrideMargin, d.OverrideMargin)
	setDB(&cfg.Gate.AttackThreshold, d.Gate.AttackThreshold)
	setDB(&cfg.Gate.ReleaseThreshold, d.Gate.ReleaseThreshold)

	return cfg, nil
}

func setDB(dst *dsp.Decibel, v *float64) {
	if v != nil {
		*dst = dsp.Decibel(*v)
	}
}
