package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FraudScope/internal/domain/models"
	"FraudScope/internal/domain/repository"
	"FraudScope/internal/feature"
	"FraudScope/pkg/logger"
)

type stubClassifier struct {
	proba float64
}

func (s stubClassifier) PredictProba(x []float64) float64 { return s.proba }

type stubMetrics struct {
	predictions int
	errors      int
}

func (m *stubMetrics) RecordPrediction(model string, probability float64) { m.predictions++ }
func (m *stubMetrics) RecordError(kind string)                            { m.errors++ }
func (m *stubMetrics) RecordLatency(operation string, seconds float64)   {}

func newTestPredictor(t *testing.T, clf repository.Classifier, m repository.Metrics) *Predictor {
	t.Helper()
	lg, err := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)

	schema := feature.NewSchema([]string{"amount", "category_Other"})
	aligner := feature.NewAligner(schema, feature.NewScaler())
	return NewPredictor(aligner, map[string]repository.Classifier{"lr": clf}, m, lg)
}

func TestPredictRoundsProbability(t *testing.T) {
	m := &stubMetrics{}
	p := newTestPredictor(t, stubClassifier{proba: 0.123456}, m)

	got, err := p.Predict("lr", models.RawRecord{"amount": 10.0})
	require.NoError(t, err)

	assert.Equal(t, "logistic_regression", got.Model)
	assert.Equal(t, 0.1235, got.Probability)
	assert.Equal(t, 0, got.IsFraud)
	assert.Equal(t, 1, m.predictions)
}

func TestPredictThresholdsUnroundedProbability(t *testing.T) {
	// 0.49996 rounds up to 0.5 for display but the decision stays 0.
	p := newTestPredictor(t, stubClassifier{proba: 0.49996}, &stubMetrics{})

	got, err := p.Predict("lr", models.RawRecord{})
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Probability)
	assert.Equal(t, 0, got.IsFraud)

	p = newTestPredictor(t, stubClassifier{proba: 0.5}, &stubMetrics{})
	got, err = p.Predict("lr", models.RawRecord{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.IsFraud)
}

func TestPredictUnknownModel(t *testing.T) {
	p := newTestPredictor(t, stubClassifier{}, &stubMetrics{})
	assert.False(t, p.HasModel("xgboost"))

	_, err := p.Predict("xgboost", models.RawRecord{})
	assert.Error(t, err)
}

func TestPredictAlignFailureRecordsError(t *testing.T) {
	m := &stubMetrics{}
	p := newTestPredictor(t, stubClassifier{proba: 0.9}, m)

	_, err := p.Predict("lr", models.RawRecord{"timestamp": "not-a-date"})
	require.Error(t, err)
	assert.Equal(t, 1, m.errors)
	assert.Equal(t, 0, m.predictions)
}
