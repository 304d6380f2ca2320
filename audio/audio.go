// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a stream of interleaved PCM samples.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0
	// with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the preferred read size in samples.
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys (e.g., "wav", "mp3", "ogg") and file extensions
// to decoders. It is safe for concurrent use.
type Registry struct {
	codecs map[string]Decoder
	exts   map[string]string

	mtx sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		exts:   make(map[string]string),
	}
}

// Register adds d under format. The format key itself is always accepted as
// an extension; extensions lists any others (with or without the dot).
func (r *Registry) Register(format string, d Decoder, extensions ...string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
	r.exts[format] = format
	for _, ext := range extensions {
		r.exts[strings.ToLower(strings.TrimPrefix(ext, "."))] = format
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return slices.Sorted(maps.Keys(r.codecs))
}

// ForPath picks the decoder for a file by its extension.
func (r *Registry) ForPath(path string) (string, Decoder, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	r.mtx.RLock()
	defer r.mtx.RUnlock()

	format, ok := r.exts[ext]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	return format, r.codecs[format], nil
}

// Open decodes the file at path. Closing the returned Source closes the file.
func (r *Registry) Open(path string) (Source, error) {
	format, d, err := r.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	src, err := d.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decoding %s as %s: %w", path, format, err)
	}
	return &fileSource{Source: src, f: f}, nil
}

type fileSource struct {
	Source
	f *os.File
}

func (s *fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.f.Close())
}

// ReadAll drains src into one interleaved slice. It reads bufSize samples at
// a time, or src.BufSize() when bufSize is not positive.
func ReadAll(src Source, bufSize int) ([]float32, error) {
	ch := src.Channels()
	if ch <= 0 {
		return nil, ErrNoChannels
	}
	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	bufSize -= bufSize % ch
	if bufSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBufferSize, bufSize)
	}

	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, nil
		}
	}
}
