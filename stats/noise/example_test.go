package noise_test

import (
	"fmt"

	"github.com/cwbudde/algo-cubefit/stats/noise"
)

func ExampleImageVariance() {
	v, _ := noise.ImageVariance([]float64{1, 2, 3, 4})
	fmt.Printf("variance=%.4f\n", v)

	// Output:
	// variance=1.6667
}
