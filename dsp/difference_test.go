// SPDX-License-Identifier: EPL-2.0

package dsp

import "testing"

func TestCentralDifference(t *testing.T) {
	t.Parallel()

	var d CentralDifference
	in := []float32{0, 1, 2, 3, 3, 3, 1}
	want := []float32{0, 0.5, 1, 1, 0.5, 0, -1}

	for i, x := range in {
		if got := d.Step(x); got != want[i] {
			t.Errorf("sample %d: Step(%v) = %v, want %v", i, x, got, want[i])
		}
	}

	d.Reset()
	if got := d.Step(4); got != 2 {
		t.Errorf("after Reset, Step(4) = %v, want 2", got)
	}
}

func TestIntegrator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gain float32
		leak float32
		in   []float32
		want []float32
	}{
		{"pure", 0.5, 1, []float32{1, 1, 1, -1}, []float32{0.5, 1, 1.5, 1}},
		{"leaky", 1, 0.5, []float32{1, 0, 0}, []float32{1, 0.5, 0.25}},
		{"silence", 2, 0.9, []float32{0, 0}, []float32{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			it := NewIntegrator(tt.gain, tt.leak)
			for i, x := range tt.in {
				if got := it.Step(x); got != tt.want[i] {
					t.Errorf("sample %d: Step(%v) = %v, want %v", i, x, got, tt.want[i])
				}
			}
			it.Reset()
			if it.Value() != 0 {
				t.Errorf("Value() after Reset = %v", it.Value())
			}
		})
	}
}
