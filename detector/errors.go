// SPDX-License-Identifier: EPL-2.0

package detector

import "errors"

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidHold       = errors.New("hold must span at least one sample")
	ErrInvalidParameter  = errors.New("invalid detector parameter")
	ErrUnknownVariant    = errors.New("unknown detector variant")
)
