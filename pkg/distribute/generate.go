package distribute

import (
	"math/rand"

	"github.com/gomlx/nbody-scatter/pkg/kernel"
)

// DefaultSeed reproduces original_source/teamscatter.cpp's
// meta::default_generator.seed(1337).
const DefaultSeed = 1337

// Generate builds n uniformly-random source points in [0,1)^3 and n
// uniformly-random charges in [0,1), using seed. It is the master-side
// data source when no input files are given (§4.4), and the body of the
// -gen-only standalone generation mode (supplementing generate.cpp).
func Generate(seed int64, n int) (source []kernel.Point, charge []float64) {
	rng := rand.New(rand.NewSource(seed))
	source = make([]kernel.Point, n)
	charge = make([]float64, n)
	for i := 0; i < n; i++ {
		source[i] = kernel.Point{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()}
		charge[i] = rng.Float64()
	}
	return source, charge
}
