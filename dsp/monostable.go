// SPDX-License-Identifier: EPL-2.0

package dsp

import "time"

// Monostable is a retriggerable one-shot timer counted in samples.
//
// Start arms the pulse for the configured number of samples; Trigger is the
// per-sample clock that counts the pulse down (and optionally re-arms it).
type Monostable struct {
	samples uint32
	ticks   uint32
}

// NewMonostable creates a pulse lasting d at sample rate sps.
func NewMonostable(d time.Duration, sps uint32) *Monostable {
	return &Monostable{samples: Samples(d, sps)}
}

// Start (re)arms the pulse.
func (m *Monostable) Start() { m.ticks = m.samples }

// Stop disarms the pulse immediately.
func (m *Monostable) Stop() { m.ticks = 0 }

// Active reports whether the pulse is running.
func (m *Monostable) Active() bool { return m.ticks > 0 }

// Trigger advances the pulse by one sample. When start is true the pulse is
// re-armed instead of counted down. It returns the resulting active state.
func (m *Monostable) Trigger(start bool) bool {
	if start {
		m.ticks = m.samples
	} else if m.ticks > 0 {
		m.ticks--
	}
	return m.ticks > 0
}

// Len returns the pulse length in samples.
func (m *Monostable) Len() uint32 { return m.samples }
