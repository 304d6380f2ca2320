// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"

	"github.com/ik5/noteonset"
	"github.com/ik5/noteonset/audio"
	"github.com/ik5/noteonset/formats"
	"github.com/ik5/noteonset/internal/config"
	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	var perChannel bool

	cmd := &cobra.Command{
		Use:   "list [file...]",
		Short: "Print the onsets of every input",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := formats.NewRegistry()
			for _, job := range opts.cfg.Jobs {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				if err := listJob(cmd.OutOrStdout(), reg, opts, job, perChannel); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&perChannel, "per-channel", false, "run one detector per channel instead of a mono mix")
	return cmd
}

func listJob(w io.Writer, reg *audio.Registry, opts *options, job config.Job, perChannel bool) error {
	src, err := reg.Open(job.Path)
	if err != nil {
		return err
	}
	defer src.Close()

	cfg, err := opts.detectorConfig(job, src.SampleRate())
	if err != nil {
		return fmt.Errorf("%s: %w", job.Path, err)
	}

	var channels [][]noteonset.Onset
	if perChannel {
		channels, err = noteonset.DetectOnsetsPerChannel(src, cfg, 0)
	} else {
		var onsets []noteonset.Onset
		onsets, err = noteonset.DetectOnsets(src, cfg, 0)
		channels = [][]noteonset.Onset{onsets}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", job.Path, err)
	}

	for _, onsets := range channels {
		for _, o := range onsets {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\t%.4f\n",
				job.Path, o.Channel, o.Frame, o.Time.Seconds(), o.Strength); err != nil {
				return err
			}
		}
	}
	return nil
}
