package usecase

import (
	"fmt"
	"math"
	"time"

	"FraudScope/internal/domain/models"
	"FraudScope/internal/domain/repository"
	"FraudScope/internal/feature"
	"FraudScope/pkg/logger"
)

// Predictor scores raw transaction records with a selected classifier. All
// dependencies are immutable after construction; safe for concurrent use.
type Predictor struct {
	aligner *feature.Aligner
	models  map[string]repository.Classifier
	metrics repository.Metrics
	logger  *logger.Logger
}

// NewPredictor builds a predictor over loaded models and the feature aligner.
func NewPredictor(
	aligner *feature.Aligner,
	classifiers map[string]repository.Classifier,
	metrics repository.Metrics,
	log *logger.Logger,
) *Predictor {
	return &Predictor{
		aligner: aligner,
		models:  classifiers,
		metrics: metrics,
		logger:  log,
	}
}

// HasModel reports whether the model key is served.
func (p *Predictor) HasModel(key string) bool {
	_, ok := p.models[key]
	return ok
}

// Predict aligns the record and scores it with the selected model. The
// decision thresholds the unrounded probability at 0.5; the reported
// probability is rounded to 4 decimal places.
func (p *Predictor) Predict(key string, record models.RawRecord) (*models.Prediction, error) {
	clf, ok := p.models[key]
	if !ok {
		return nil, fmt.Errorf("unknown model %q", key)
	}

	start := time.Now()
	row, err := p.aligner.Align(record)
	if err != nil {
		p.metrics.RecordError("align")
		return nil, err
	}

	prob := clf.PredictProba(row)
	p.metrics.RecordLatency("predict", time.Since(start).Seconds())
	p.metrics.RecordPrediction(key, prob)

	isFraud := 0
	if prob >= 0.5 {
		isFraud = 1
	}

	name := models.ModelKeys[key]
	p.logger.Debug("prediction served",
		logger.String("model", name),
		logger.Float64("probability", prob),
		logger.Int("is_fraud", isFraud),
	)

	return &models.Prediction{
		Model:       name,
		Probability: math.Round(prob*10000) / 10000,
		IsFraud:     isFraud,
	}, nil
}
