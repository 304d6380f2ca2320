// SPDX-License-Identifier: EPL-2.0

// Command notedetect runs the note onset detector over audio files.
//
//	notedetect detect --frequency 82.41 --out results take.wav
//	notedetect detect --config jobs.yaml --diagnostics
//	notedetect list --frequency 440 --variant dual-band take.ogg
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("notedetect failed", "err", err)
		stop()
		os.Exit(1)
	}
}
