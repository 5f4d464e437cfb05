package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfusion(t *testing.T) {
	yTrue := []int{0, 0, 1, 1, 1}
	yPred := []int{0, 1, 1, 0, 1}

	cm := Confusion(yTrue, yPred)
	assert.Equal(t, 1, cm[0][0])
	assert.Equal(t, 1, cm[0][1])
	assert.Equal(t, 1, cm[1][0])
	assert.Equal(t, 2, cm[1][1])
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 0.75, Accuracy([]int{0, 1, 0, 1}, []int{0, 1, 0, 0}))
	assert.Equal(t, 0.0, Accuracy(nil, nil))
}

func TestPrecisionRecallF1(t *testing.T) {
	yTrue := []int{1, 1, 1, 0, 0}
	yPred := []int{1, 1, 0, 1, 0}

	prec, rec, f1 := PrecisionRecallF1(yTrue, yPred)
	assert.InDelta(t, 2.0/3.0, prec, 1e-9)
	assert.InDelta(t, 2.0/3.0, rec, 1e-9)
	assert.InDelta(t, 2.0/3.0, f1, 1e-9)

	// No positive predictions: all ratios stay at zero.
	prec, rec, f1 = PrecisionRecallF1([]int{0, 0}, []int{0, 0})
	assert.Equal(t, 0.0, prec)
	assert.Equal(t, 0.0, rec)
	assert.Equal(t, 0.0, f1)
}

func TestBinaryFromProba(t *testing.T) {
	got := BinaryFromProba([]float64{0.1, 0.5, 0.9}, 0.5)
	assert.Equal(t, []int{0, 1, 1}, got)
}
