package predictor

import (
	"math"
	"math/rand/v2"
)

// ShuffleAndSplit shuffles samples and holds out ceil(testFraction*n) of them
// for scoring. The rest is the training partition.
func ShuffleAndSplit(X [][]float64, y []float64, testFraction float64, rng *rand.Rand) (trainX [][]float64, trainY []float64, testX [][]float64, testY []float64) {
	n := len(X)
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest > n {
		nTest = n
	}
	nTrain := n - nTest

	indices := rng.Perm(n)

	trainX = make([][]float64, nTrain)
	trainY = make([]float64, nTrain)
	testX = make([][]float64, nTest)
	testY = make([]float64, nTest)
	for i := 0; i < nTrain; i++ {
		trainX[i] = X[indices[i]]
		trainY[i] = y[indices[i]]
	}
	for i := 0; i < nTest; i++ {
		testX[i] = X[indices[nTrain+i]]
		testY[i] = y[indices[nTrain+i]]
	}
	return
}
