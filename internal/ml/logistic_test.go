package ml

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// toyData produces a linearly separable binary problem: class 1 clusters
// around (2, 2), class 0 around (-2, -2).
func toyData(n int, seed int64) ([][]float64, []int) {
	rnd := rand.New(rand.NewSource(seed))
	X := make([][]float64, 0, 2*n)
	y := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		X = append(X, []float64{2 + rnd.NormFloat64()*0.3, 2 + rnd.NormFloat64()*0.3})
		y = append(y, 1)
		X = append(X, []float64{-2 + rnd.NormFloat64()*0.3, -2 + rnd.NormFloat64()*0.3})
		y = append(y, 0)
	}
	return X, y
}

func TestLogisticLearnsSeparableData(t *testing.T) {
	X, y := toyData(100, 1)

	m := NewLogisticRegression(2, 0.5, 100, 32, 42)
	require.NoError(t, m.Fit(X, y, [2]float64{1, 1}))

	pred := m.Predict(X)
	assert.GreaterOrEqual(t, Accuracy(y, pred), 0.95)

	pos := m.PredictProba([]float64{2, 2})
	neg := m.PredictProba([]float64{-2, -2})
	assert.Greater(t, pos, 0.9)
	assert.Less(t, neg, 0.1)
}

func TestLogisticProbaBounds(t *testing.T) {
	m := NewLogisticRegression(3, 0.1, 1, 8, 7)
	p := m.PredictProba([]float64{100, -50, 3})
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestLogisticFitValidation(t *testing.T) {
	m := NewLogisticRegression(2, 0.1, 10, 4, 1)

	assert.Error(t, m.Fit(nil, nil, [2]float64{1, 1}))
	assert.Error(t, m.Fit([][]float64{{1, 2}}, []int{0, 1}, [2]float64{1, 1}))
	assert.Error(t, m.Fit([][]float64{{1, 2, 3}}, []int{0}, [2]float64{1, 1}))
}

func TestLogisticTrainingDeterministic(t *testing.T) {
	X, y := toyData(50, 3)

	a := NewLogisticRegression(2, 0.2, 30, 16, 9)
	b := NewLogisticRegression(2, 0.2, 30, 16, 9)
	require.NoError(t, a.Fit(X, y, [2]float64{1, 1}))
	require.NoError(t, b.Fit(X, y, [2]float64{1, 1}))

	assert.Equal(t, a.W, b.W)
	assert.Equal(t, a.B, b.B)
}

func TestLogisticGobRoundTrip(t *testing.T) {
	X, y := toyData(50, 5)
	m := NewLogisticRegression(2, 0.5, 50, 16, 11)
	require.NoError(t, m.Fit(X, y, [2]float64{1, 1}))

	path := filepath.Join(t.TempDir(), "lr.gob")
	require.NoError(t, Save(path, m))

	loaded, err := LoadLogistic(path)
	require.NoError(t, err)
	assert.Equal(t, m.W, loaded.W)
	assert.Equal(t, m.PredictProba(X[0]), loaded.PredictProba(X[0]))
}
