// SPDX-License-Identifier: EPL-2.0

package utils

import "golang.org/x/exp/constraints"

// Clamp limits x to [lo, hi].
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
