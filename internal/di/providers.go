package di

import (
	domrepo "FraudScope/internal/domain/repository"
	"FraudScope/internal/feature"
	"FraudScope/internal/handler/api"
	internalrepo "FraudScope/internal/repository"
	"FraudScope/internal/usecase"
	"FraudScope/pkg/config"
	"FraudScope/pkg/logger"
	"FraudScope/pkg/metrics"
	"FraudScope/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideArtifactStore creates the file-backed artifact store.
func ProvideArtifactStore(cfg *config.Config) *internalrepo.ArtifactStore {
	return internalrepo.NewArtifactStore(cfg)
}

// ProvideSchema loads the training column order. Fatal if missing or corrupt.
func ProvideSchema(store *internalrepo.ArtifactStore) (*feature.Schema, error) {
	return store.LoadSchema()
}

// ProvideScaler loads the fitted scaler. Fatal if missing or corrupt.
func ProvideScaler(store *internalrepo.ArtifactStore) (*feature.Scaler, error) {
	return store.LoadScaler()
}

// ProvideAligner builds the feature aligner over the loaded artifacts.
func ProvideAligner(schema *feature.Schema, scaler *feature.Scaler) *feature.Aligner {
	return feature.NewAligner(schema, scaler)
}

// ProvideClassifiers loads both fitted models. Fatal if missing or corrupt.
func ProvideClassifiers(store *internalrepo.ArtifactStore) (map[string]domrepo.Classifier, error) {
	return store.LoadClassifiers()
}

// ProvidePredictor creates the prediction use case.
func ProvidePredictor(
	aligner *feature.Aligner,
	classifiers map[string]domrepo.Classifier,
	m domrepo.Metrics,
	log *logger.Logger,
) *usecase.Predictor {
	return usecase.NewPredictor(aligner, classifiers, m, log)
}

// ProvidePredictHandler creates the Echo HTTP handler.
func ProvidePredictHandler(log *logger.Logger, predictor *usecase.Predictor) *api.PredictHandler {
	return api.NewPredictHandler(log, predictor)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *logger.Logger, handler *api.PredictHandler) *server.App {
	return server.New(cfg, log, handler)
}
