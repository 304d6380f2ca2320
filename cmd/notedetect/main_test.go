// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ik5/noteonset/audio"
	"github.com/ik5/noteonset/formats"
	"github.com/ik5/noteonset/formats/wav"
	"github.com/ik5/noteonset/internal/audiotest"
	"github.com/ik5/noteonset/utils"
)

const rate = 44100

// writeBurst writes a mono WAV file with 500ms of silence, a 200ms 1kHz tone
// and 300ms of silence.
func writeBurst(t *testing.T, dir string) string {
	t.Helper()

	in := audiotest.ToneBurst(rate, 1000, 1, 500*time.Millisecond, 200*time.Millisecond, 300*time.Millisecond)
	pcm := make([]int16, len(in))
	utils.Float32sToInt16s(pcm, in)

	path := filepath.Join(dir, "burst.wav")
	buf := new(bytes.Buffer)
	if err := wav.WriteWAV16(buf, rate, 1, pcm); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDetect(t *testing.T) {
	dir := t.TempDir()
	in := writeBurst(t, dir)
	outDir := filepath.Join(dir, "results")

	tests := []struct {
		name     string
		args     []string
		channels int
	}{
		{"demo", []string{"--variant", "basic"}, 2},
		{"diagnostics", []string{"--variant", "dual-band", "--diagnostics"}, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"detect", "--frequency", "909", "--out", outDir, "--log-level", "error"}, tt.args...)
			if _, err := execute(t, append(args, in)...); err != nil {
				t.Fatalf("detect error = %v", err)
			}

			f, err := os.Open(filepath.Join(outDir, "onset_burst.wav"))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			src, err := wav.Decoder{}.Decode(f)
			if err != nil {
				t.Fatal(err)
			}
			if src.Channels() != tt.channels {
				t.Errorf("channels = %d, want %d", src.Channels(), tt.channels)
			}
			if src.SampleRate() != rate {
				t.Errorf("sample rate = %d, want %d", src.SampleRate(), rate)
			}

			all, err := audio.ReadAll(src, 0)
			if err != nil {
				t.Fatal(err)
			}
			if want := rate * tt.channels; len(all) != want {
				t.Errorf("read %d samples, want %d", len(all), want)
			}
		})
	}
}

func TestList(t *testing.T) {
	in := writeBurst(t, t.TempDir())

	out, err := execute(t, "list", "-f", "909", "--log-level", "error", in)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 {
		t.Fatal("no onsets listed")
	}
	fields := strings.Split(lines[0], "\t")
	if len(fields) != 5 {
		t.Fatalf("unexpected line %q", lines[0])
	}
	if fields[0] != in || fields[1] != "0" || fields[3] != "0.500" {
		t.Errorf("first onset line = %q, want channel 0 at 0.500s", lines[0])
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := writeBurst(t, dir)
	outDir := filepath.Join(dir, "out")

	cfg := "log_level: error\noutput:\n  dir: " + outDir + "\n  taper_width: 50ms\njobs:\n  - path: " + in + "\n    frequency: 909\n"
	cfgPath := filepath.Join(dir, "notedetect.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "detect", "--config", cfgPath); err != nil {
		t.Fatalf("detect error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "onset_burst.wav")); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeBurst(t, dir)

	if _, err := execute(t, "detect", "--out", dir); !errors.Is(err, errNoInput) {
		t.Errorf("no input: error = %v, want %v", err, errNoInput)
	}
	if _, err := execute(t, "list", in); err == nil || !strings.Contains(err.Error(), "frequency") {
		t.Errorf("missing frequency: error = %v", err)
	}
	if _, err := execute(t, "list", "-f", "440", "--variant", "triple", in); err == nil || !strings.Contains(err.Error(), "variant") {
		t.Errorf("bad variant: error = %v", err)
	}
	if _, err := execute(t, "list", "-f", "440", filepath.Join(dir, "notes.txt")); !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("unsupported file: error = %v", err)
	}
}

func TestUsageExamplesUseRegisteredFormats(t *testing.T) {
	reg := formats.NewRegistry()

	var files int
	for _, field := range strings.Fields(newRootCmd().Example) {
		if filepath.Ext(field) == "" || strings.HasSuffix(field, ".yaml") || strings.HasPrefix(field, "-") {
			continue
		}
		if _, err := strconv.ParseFloat(field, 64); err == nil {
			continue
		}
		files++
		if _, _, err := reg.ForPath(field); err != nil {
			t.Errorf("usage example %q: %v", field, err)
		}
	}
	if files == 0 {
		t.Error("usage examples name no input files")
	}
}
