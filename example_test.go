// SPDX-License-Identifier: EPL-2.0

package audsim_test

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ik5/audsim"
	"github.com/ik5/audsim/formats/wav"
	"github.com/ik5/audsim/internal/synth"
	"github.com/ik5/audsim/utils"
)

func ExampleComparator_CompareReaders() {
	var buf bytes.Buffer
	tone := utils.Float64sToInt16(synth.Harmonic(22050, 1, 220, 4))
	if err := wav.WriteWAV16(&buf, 22050, 1, tone); err != nil {
		fmt.Println("error:", err)
		return
	}
	data := buf.Bytes()

	cmp, err := audsim.New(audsim.DefaultConfig())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	res, err := cmp.CompareReaders(context.Background(),
		audsim.Input{Name: "first.wav", Reader: bytes.NewReader(data)},
		audsim.Input{Name: "second.wav", Reader: bytes.NewReader(data)},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%.0f\n%s\n", res.SimilarityScore, res.Interpretation)
	// Output:
	// 100
	// Very High - The audio recordings are extremely similar
}
