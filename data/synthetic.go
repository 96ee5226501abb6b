package data

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// SyntheticBlobs draws n samples from per-class gaussian blobs and returns
// the inputs with one-hot targets. Class c is centered at 3.0 along feature
// c mod features, which keeps the classes linearly separable.
func SyntheticBlobs(n, features, classes int, rng *rand.Rand) (*mat.Dense, *mat.Dense) {
	inputs := mat.NewDense(n, features, nil)
	targets := mat.NewDense(n, classes, nil)

	for i := 0; i < n; i++ {
		c := i % classes
		for j := 0; j < features; j++ {
			v := rng.NormFloat64()
			if j == c%features {
				v += 3.0
			}
			inputs.Set(i, j, v)
		}
		targets.Set(i, c, 1.0)
	}

	return inputs, targets
}
