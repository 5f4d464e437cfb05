package feature

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalerFitTransform(t *testing.T) {
	s := NewScaler()
	err := s.Fit(
		[]string{"amount", "chargeback_history"},
		[][]float64{{2, 4, 4, 4, 5, 5, 7, 9}, {1, 1, 1, 1, 1, 1, 1, 1}},
	)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, s.Mean[0], 1e-9)
	assert.InDelta(t, 2.0, s.Std[0], 1e-9)
	// Constant column keeps std 1 so transforms stay finite.
	assert.Equal(t, 1.0, s.Std[1])

	col := []float64{3, 5, 7}
	require.NoError(t, s.TransformCol("amount", col))
	assert.InDelta(t, -1.0, col[0], 1e-9)
	assert.InDelta(t, 0.0, col[1], 1e-9)
	assert.InDelta(t, 1.0, col[2], 1e-9)

	assert.Error(t, s.TransformCol("unknown", col))
}

func TestScalerApplySkipsUnfittedColumns(t *testing.T) {
	s := NewScaler()
	require.NoError(t, s.Fit([]string{"amount"}, [][]float64{{0, 10}}))

	schema := NewSchema([]string{"amount", "category_Food"})
	row := []float64{10, 1}
	s.Apply(schema, row)

	assert.InDelta(t, 1.0, row[0], 1e-9)
	assert.Equal(t, 1.0, row[1])
}

func TestScalerRoundTrip(t *testing.T) {
	s := NewScaler()
	require.NoError(t, s.Fit([]string{"amount"}, [][]float64{{1, 2, 3}}))

	path := filepath.Join(t.TempDir(), "scaler.json")
	require.NoError(t, s.Save(path))

	loaded, err := LoadScaler(path)
	require.NoError(t, err)
	assert.Equal(t, s.Columns, loaded.Columns)
	assert.Equal(t, s.Mean, loaded.Mean)
	assert.Equal(t, s.Std, loaded.Std)
}

func TestLoadScalerRejectsInconsistentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scaler.json")
	require.NoError(t, writeFile(path, `{"columns":["a","b"],"mean":[1],"std":[1]}`))

	_, err := LoadScaler(path)
	assert.Error(t, err)
}
