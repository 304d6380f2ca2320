// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/ik5/noteonset/detector"
	"github.com/ik5/noteonset/dsp"
	"github.com/ik5/noteonset/internal/config"
	"github.com/spf13/cobra"
)

var errNoInput = errors.New("no input files: pass files as arguments or list them under jobs in --config")

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	logLevel   string
	frequency  float64
	variant    string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "notedetect",
		Short:         "Note onset detection for audio files",
		Long:          `notedetect finds note onsets and decays in WAV, AIFF, MP3 and Ogg Vorbis files.`,
		Example: `  notedetect detect --frequency 82.41 --out results take.wav
  notedetect detect --config jobs.yaml --diagnostics
  notedetect list --frequency 440 --variant dual-band take.ogg`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.Float64VarP(&opts.frequency, "frequency", "f", 0, "fundamental of the lowest note, in Hz, for files given as arguments")
	pf.StringVar(&opts.variant, "variant", "", "detector variant: "+variantNames())

	root.AddCommand(newDetectCmd(opts), newListCmd(opts))
	return root
}

// load reads the configuration file, applies the command-line overrides and
// installs the logger.
func (o *options) load(cmd *cobra.Command, args []string) error {
	cfg := &config.Config{}
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}

	if o.logLevel != "" {
		cfg.LogLevel = config.LogLevel(o.logLevel)
	}
	if o.variant != "" {
		cfg.Detector.Variant = detector.Variant(o.variant)
	}
	for _, path := range args {
		cfg.Jobs = append(cfg.Jobs, config.Job{Path: path, Frequency: o.frequency})
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if len(cfg.Jobs) == 0 {
		return errNoInput
	}

	slog.SetDefault(newLogger(cfg.LogLevel, cmd.ErrOrStderr()))
	o.cfg = cfg
	return nil
}

// detectorConfig builds the detector configuration for one job.
func (o *options) detectorConfig(job config.Job, sampleRate int) (detector.Config, error) {
	base := detector.DefaultConfig(detector.HoldFor(dsp.Frequency(job.Frequency)), uint32(sampleRate))
	cfg, err := o.cfg.Detector.Apply(base)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func newLogger(level config.LogLevel, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.Slog()}))
}

func variantNames() string {
	names := make([]string, len(detector.Variants))
	for i, v := range detector.Variants {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
