// SPDX-License-Identifier: EPL-2.0

package detector_test

import (
	"fmt"
	"math"
	"time"

	"github.com/ik5/noteonset/detector"
)

func Example() {
	const sps = 44100

	cfg := detector.DefaultConfig(detector.HoldFor(909), sps)
	d, err := detector.New(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	// 500ms of silence followed by a 1kHz tone
	for i := range sps {
		var s float32
		if i >= sps/2 {
			s = float32(math.Sin(2 * math.Pi * 1000 * float64(i-sps/2) / sps))
		}
		if info := d.Step(s); info.Onset {
			at := time.Duration(i) * time.Second / sps
			fmt.Printf("first onset at %d ms\n", at.Milliseconds())
			break
		}
	}
	// Output: first onset at 500 ms
}

func ExampleConfig_WithVariant() {
	cfg, err := detector.DefaultConfig(time.Millisecond, 48000).WithVariant(detector.VariantWindowed)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(cfg.Taper, cfg.Shape, cfg.DecayPolicy)
	// Output: true combined adaptive
}

func ExampleHoldFor() {
	fmt.Println(detector.HoldFor(1000))
	// Output: 1.1ms
}
