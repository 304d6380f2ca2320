// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ik5/noteonset/audio"
	"github.com/ik5/noteonset/dsp"
	"github.com/ik5/noteonset/formats"
	"github.com/ik5/noteonset/formats/wav"
	"github.com/ik5/noteonset/internal/config"
	"github.com/ik5/noteonset/internal/diagnostics"
	"github.com/ik5/noteonset/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type detectOptions struct {
	*options

	out         string
	diagnostics bool
	parallel    int
}

func newDetectCmd(opts *options) *cobra.Command {
	d := &detectOptions{options: opts}

	cmd := &cobra.Command{
		Use:   "detect [file...]",
		Short: "Render onset_<name>.wav listening files",
		Long: `detect runs the detector over every input and writes a WAV file per input.
The first channel is the input, the second plays a short taper on every onset.
With --diagnostics four more channels carry the detector envelopes and the
blanking pulse.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return d.run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&d.out, "out", "o", "", "output directory (default: output.dir from the config, or results)")
	f.BoolVar(&d.diagnostics, "diagnostics", false, "render envelope and onset channels")
	f.IntVarP(&d.parallel, "parallel", "p", runtime.NumCPU(), "number of files processed at once")
	return cmd
}

func (d *detectOptions) run(ctx context.Context) error {
	out := d.out
	if out == "" {
		out = d.cfg.Output.Dir
	}
	if out == "" {
		out = "results"
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	reg := formats.NewRegistry()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(d.parallel, 1))

	for _, job := range d.cfg.Jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return d.render(reg, job, out)
		})
	}
	return g.Wait()
}

func (d *detectOptions) render(reg *audio.Registry, job config.Job, outDir string) error {
	start := time.Now()

	src, err := reg.Open(job.Path)
	if err != nil {
		return err
	}
	defer src.Close()

	mono := audio.NewMonoMixer(src)
	in, err := audio.ReadAll(mono, 0)
	if err != nil {
		return fmt.Errorf("reading %s: %w", job.Path, err)
	}

	cfg, err := d.detectorConfig(job, mono.SampleRate())
	if err != nil {
		return fmt.Errorf("%s: %w", job.Path, err)
	}
	r, err := diagnostics.NewRenderer(cfg, diagnostics.Options{
		Fundamental: dsp.Frequency(job.Frequency),
		TaperWidth:  d.cfg.Output.Taper(),
		Diagnostics: d.diagnostics || d.cfg.Output.Diagnostics,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", job.Path, err)
	}

	rendered := r.Render(in)
	pcm := make([]int16, len(rendered))
	utils.Float32sToInt16s(pcm, rendered)

	path := filepath.Join(outDir, "onset_"+baseName(job.Path)+".wav")
	if err := writeWAV(path, mono.SampleRate(), r.Channels(), pcm); err != nil {
		return err
	}

	stats := r.Stats()
	slog.Info("rendered",
		"file", job.Path,
		"out", path,
		"onsets", stats.Onsets,
		"samples", stats.Samples,
		"duration", time.Duration(int64(stats.Samples)*int64(time.Second)/int64(mono.SampleRate())),
		"elapsed", time.Since(start),
	)
	slog.Debug("levels", "file", job.Path, "attack", stats.Attack, "decay", stats.Decay)
	return nil
}

func writeWAV(path string, sampleRate, channels int, pcm []int16) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := wav.WriteWAV16(f, sampleRate, channels, pcm); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
