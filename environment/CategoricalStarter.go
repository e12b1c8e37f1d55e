package environment

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter samples vectors of integers. Feature i is sampled
// uniformly from the integers in the closed interval bounds[i]. All
// features share a single source of randomness.
type CategoricalStarter struct {
	low  []float64
	rand []distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter. It panics if
// some interval contains no integers.
func NewCategoricalStarter(bounds []r1.Interval,
	seed uint64) *CategoricalStarter {
	source := rand.NewSource(seed)

	low := make([]float64, len(bounds))
	dists := make([]distuv.Categorical, len(bounds))
	for i, b := range bounds {
		low[i] = math.Ceil(b.Min)
		n := int(math.Floor(b.Max)-low[i]) + 1
		if math.IsInf(b.Min, 0) || math.IsInf(b.Max, 0) || n < 1 {
			panic(fmt.Sprintf("newCategoricalStarter: no integers in "+
				"[%v, %v]", b.Min, b.Max))
		}

		weights := make([]float64, n)
		for j := range weights {
			weights[j] = 1.0
		}
		dists[i] = distuv.NewCategorical(weights, source)
	}

	return &CategoricalStarter{low: low, rand: dists}
}

// Start returns a vector of integers sampled from the bounds
func (c *CategoricalStarter) Start() *mat.VecDense {
	start := make([]float64, len(c.rand))
	for i := range start {
		start[i] = c.low[i] + c.rand[i].Rand()
	}
	return mat.NewVecDense(len(start), start)
}
