package ml

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForestLearnsSeparableData(t *testing.T) {
	X, y := toyData(100, 2)

	rf := NewRandomForest(
		WithNEstimators(20),
		WithForestMaxDepth(5),
		WithForestSeed(42),
	)
	require.NoError(t, rf.Fit(X, y))

	pred := rf.Predict(X)
	assert.GreaterOrEqual(t, Accuracy(y, pred), 0.95)

	assert.Greater(t, rf.PredictProba([]float64{2, 2}), 0.7)
	assert.Less(t, rf.PredictProba([]float64{-2, -2}), 0.3)
}

func TestForestFitReproducible(t *testing.T) {
	X, y := toyData(40, 6)

	a := NewRandomForest(WithNEstimators(10), WithForestSeed(13))
	b := NewRandomForest(WithNEstimators(10), WithForestSeed(13))
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))

	probe := []float64{0.5, -0.5}
	assert.Equal(t, a.PredictProba(probe), b.PredictProba(probe))
}

func TestForestProbaIsMeanOfTrees(t *testing.T) {
	X, y := toyData(30, 8)
	rf := NewRandomForest(WithNEstimators(5), WithForestSeed(3))
	require.NoError(t, rf.Fit(X, y))

	probe := []float64{2, 2}
	sum := 0.0
	for _, tree := range rf.Trees {
		sum += tree.PredictProba(probe)
	}
	assert.InDelta(t, sum/5, rf.PredictProba(probe), 1e-12)
}

func TestForestBalancedSubsample(t *testing.T) {
	// 95/5 imbalance; balanced weights should still let the minority class win
	// in its own region.
	var X [][]float64
	var y []int
	for i := 0; i < 95; i++ {
		X = append(X, []float64{float64(i % 10), 0})
		y = append(y, 0)
	}
	for i := 0; i < 5; i++ {
		X = append(X, []float64{50, 50})
		y = append(y, 1)
	}

	rf := NewRandomForest(
		WithNEstimators(20),
		WithForestSeed(1),
		WithBalancedSubsample(true),
	)
	require.NoError(t, rf.Fit(X, y))
	assert.Greater(t, rf.PredictProba([]float64{50, 50}), 0.5)
}

func TestForestEmptyInput(t *testing.T) {
	rf := NewRandomForest()
	assert.Error(t, rf.Fit(nil, nil))
	assert.Error(t, rf.Fit([][]float64{{1}}, []int{0, 1}))
	// Unfitted forest degrades to probability zero.
	assert.Equal(t, 0.0, rf.PredictProba([]float64{1}))
}

func TestForestGobRoundTrip(t *testing.T) {
	X, y := toyData(40, 4)
	rf := NewRandomForest(WithNEstimators(8), WithForestSeed(21))
	require.NoError(t, rf.Fit(X, y))

	path := filepath.Join(t.TempDir(), "rf.gob")
	require.NoError(t, Save(path, rf))

	loaded, err := LoadForest(path)
	require.NoError(t, err)
	require.Len(t, loaded.Trees, 8)

	probe := []float64{1.5, 1.5}
	assert.Equal(t, rf.PredictProba(probe), loaded.PredictProba(probe))
}
