package repository

// Classifier scores a single aligned feature vector and returns the
// probability of the fraud class.
type Classifier interface {
	PredictProba(x []float64) float64
}

// Metrics records domain-level observability signals.
type Metrics interface {
	RecordPrediction(model string, probability float64)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
