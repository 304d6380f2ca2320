// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidBufferSize = errors.New("buffer must hold at least one frame")
	ErrNoChannels        = errors.New("source reports no channels")
	ErrUnsupportedFormat = errors.New("no decoder registered for format")
)
