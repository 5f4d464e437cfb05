package ml

import (
	"errors"
	"math"
	"math/rand"
)

// LogisticRegression is a binary classifier trained with mini-batch gradient
// descent on the sigmoid cross-entropy loss. Exported fields are persisted
// via gob.
type LogisticRegression struct {
	W         []float64 // per-feature weights
	B         float64   // bias
	Lr        float64
	Epochs    int
	BatchSize int
	Seed      int64
}

// NewLogisticRegression initializes a model for nFeatures inputs. Weights
// start at small seeded random values to break symmetry.
func NewLogisticRegression(nFeatures int, lr float64, epochs, batchSize int, seed int64) *LogisticRegression {
	rnd := rand.New(rand.NewSource(seed))
	w := make([]float64, nFeatures)
	for i := range w {
		w[i] = rnd.NormFloat64() * 0.01
	}
	return &LogisticRegression{
		W:         w,
		B:         0.0,
		Lr:        lr,
		Epochs:    epochs,
		BatchSize: batchSize,
		Seed:      seed,
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// PredictProba returns the fraud probability for a single feature row.
func (m *LogisticRegression) PredictProba(x []float64) float64 {
	sum := m.B
	for j, v := range x {
		sum += m.W[j] * v
	}
	return sigmoid(sum)
}

// PredictProbaBatch returns fraud probabilities for each row in X.
func (m *LogisticRegression) PredictProbaBatch(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = m.PredictProba(row)
	}
	return out
}

// Predict returns class labels based on a 0.5 probability threshold.
func (m *LogisticRegression) Predict(X [][]float64) []int {
	out := make([]int, len(X))
	for i, row := range X {
		if m.PredictProba(row) >= 0.5 {
			out[i] = 1
		}
	}
	return out
}

// Fit trains the model. classWeight scales each sample's gradient by the
// weight of its true class; {1, 1} disables the compensation.
func (m *LogisticRegression) Fit(X [][]float64, y []int, classWeight [2]float64) error {
	if len(X) == 0 {
		return errors.New("logistic: empty X")
	}
	if len(y) != len(X) {
		return errors.New("logistic: X and y length mismatch")
	}
	if len(X[0]) != len(m.W) {
		return errors.New("logistic: feature count mismatch between model and data")
	}

	n := len(X)
	batch := m.BatchSize
	if batch <= 0 || batch > n {
		batch = n
	}
	rnd := rand.New(rand.NewSource(m.Seed))
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	gW := make([]float64, len(m.W))
	for ep := 0; ep < m.Epochs; ep++ {
		rnd.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

		for start := 0; start < n; start += batch {
			end := start + batch
			if end > n {
				end = n
			}

			for j := range gW {
				gW[j] = 0
			}
			gB := 0.0

			for _, i := range order[start:end] {
				p := m.PredictProba(X[i])
				d := (p - float64(y[i])) * classWeight[y[i]]
				for j, xij := range X[i] {
					gW[j] += d * xij
				}
				gB += d
			}

			scale := m.Lr / float64(end-start)
			for j := range m.W {
				m.W[j] -= scale * gW[j]
			}
			m.B -= scale * gB
		}
	}
	return nil
}
