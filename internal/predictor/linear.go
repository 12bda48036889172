package predictor

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"energy_dashboard/internal/model"
)

var (
	// ErrNoTrainingData is returned when no usable record remains.
	ErrNoTrainingData = errors.New("no training data")
	// ErrInsufficientData is returned when the split leaves an empty partition.
	ErrInsufficientData = errors.New("not enough records to split")
	// ErrFeatureShape is returned when a model's coefficients do not match
	// the feature vector.
	ErrFeatureShape = errors.New("feature shape mismatch")
)

// TrainConfig holds the split parameters.
type TrainConfig struct {
	TestFraction float64
	Seed         uint64
}

// DefaultTrainConfig returns an 80/20 split with seed 42.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		TestFraction: 0.2,
		Seed:         42,
	}
}

// Model is a fitted linear regression of hourly energy on the six features
// in model.FeatureNames order, with scores from the held-out partition.
type Model struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Features     []string  `json:"features"`
	R2           float64   `json:"r2"`
	MAE          float64   `json:"mae"`
	TrainSize    int       `json:"train_size"`
	TestSize     int       `json:"test_size"`
}

// Train fits a model on records. Records with a non-finite feature or target
// are skipped. The model is never built from an empty training partition.
func Train(records []model.HourlyRecord, cfg TrainConfig) (*Model, error) {
	if cfg.TestFraction <= 0 || cfg.TestFraction >= 1 {
		return nil, fmt.Errorf("test fraction %.3f outside (0, 1)", cfg.TestFraction)
	}

	X, y := usableSamples(records)
	if len(X) == 0 {
		return nil, ErrNoTrainingData
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, 0))
	trainX, trainY, testX, testY := ShuffleAndSplit(X, y, cfg.TestFraction, rng)
	if len(trainX) == 0 || len(testX) == 0 {
		return nil, fmt.Errorf("%w: %d usable records", ErrInsufficientData, len(X))
	}

	intercept, coef, err := fitOLS(trainX, trainY)
	if err != nil {
		return nil, fmt.Errorf("fitting regression: %w", err)
	}

	m := &Model{
		Intercept:    intercept,
		Coefficients: coef,
		Features:     featureNames(),
		TrainSize:    len(trainX),
		TestSize:     len(testX),
	}

	predictions := make([]float64, len(testX))
	for i, row := range testX {
		predictions[i] = m.predictRow(row)
	}
	m.R2 = RSquared(testY, predictions)
	m.MAE = MeanAbsoluteError(testY, predictions)

	return m, nil
}

// Predict evaluates the model for one feature vector.
func (m *Model) Predict(f model.FeatureVector) (float64, error) {
	if len(m.Coefficients) != model.FeatureCount {
		return 0, fmt.Errorf("%w: model has %d coefficients, vector has %d", ErrFeatureShape, len(m.Coefficients), model.FeatureCount)
	}
	v := m.predictRow(f[:])
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("prediction is not finite for %v", f)
	}
	return v, nil
}

func (m *Model) predictRow(row []float64) float64 {
	sum := m.Intercept
	for j, c := range m.Coefficients {
		sum += c * row[j]
	}
	return sum
}

func usableSamples(records []model.HourlyRecord) ([][]float64, []float64) {
	X := make([][]float64, 0, len(records))
	y := make([]float64, 0, len(records))
	for _, r := range records {
		f := r.Features()
		if !finite(r.EnergyConsumptionKWh) || !allFinite(f[:]) {
			continue
		}
		X = append(X, f.Slice())
		y = append(y, r.EnergyConsumptionKWh)
	}
	return X, y
}

// fitOLS solves least squares with an intercept by centering the columns and
// taking the minimum-norm solution from a thin SVD, so constant or collinear
// feature columns get a zero coefficient instead of failing the fit.
func fitOLS(X [][]float64, y []float64) (float64, []float64, error) {
	n, p := len(X), len(X[0])

	colMeans := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		colMeans[j] = stat.Mean(col, nil)
	}
	yMean := stat.Mean(y, nil)

	xc := mat.NewDense(n, p, nil)
	yc := mat.NewVecDense(n, nil)
	for i := range X {
		for j := 0; j < p; j++ {
			xc.Set(i, j, X[i][j]-colMeans[j])
		}
		yc.SetVec(i, y[i]-yMean)
	}

	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return 0, nil, errors.New("SVD factorization failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	var uty mat.VecDense
	uty.MulVec(u.T(), yc)

	// Same cutoff as numpy's lstsq default.
	tol := 0.0
	if len(s) > 0 {
		tol = s[0] * float64(max(n, p)) * 2.220446049250313e-16
	}
	for i, sv := range s {
		if sv > tol {
			uty.SetVec(i, uty.AtVec(i)/sv)
		} else {
			uty.SetVec(i, 0)
		}
	}

	var beta mat.VecDense
	beta.MulVec(&v, &uty)

	coef := make([]float64, p)
	intercept := yMean
	for j := 0; j < p; j++ {
		coef[j] = beta.AtVec(j)
		intercept -= coef[j] * colMeans[j]
	}
	return intercept, coef, nil
}

// RSquared is the coefficient of determination. A constant target scores 1
// when predicted exactly and 0 otherwise; fewer than two samples score 0.
func RSquared(actual, predicted []float64) float64 {
	if len(actual) < 2 {
		return 0
	}
	mean := stat.Mean(actual, nil)
	var ssRes, ssTot float64
	for i := range actual {
		d := actual[i] - predicted[i]
		ssRes += d * d
		t := actual[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// MeanAbsoluteError averages |actual - predicted|.
func MeanAbsoluteError(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	abs := make([]float64, len(actual))
	for i := range actual {
		abs[i] = math.Abs(actual[i] - predicted[i])
	}
	return stat.Mean(abs, nil)
}

func featureNames() []string {
	names := make([]string, model.FeatureCount)
	copy(names, model.FeatureNames[:])
	return names
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if !finite(v) {
			return false
		}
	}
	return true
}
