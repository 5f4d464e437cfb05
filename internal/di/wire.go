//go:build wireinject
// +build wireinject

package di

import (
	"FraudScope/pkg/config"
	"FraudScope/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Logging and metrics
		ProvideLogger,
		ProvideMetrics,

		// Trained artifacts
		ProvideArtifactStore,
		ProvideSchema,
		ProvideScaler,
		ProvideClassifiers,
		ProvideAligner,

		// Use cases
		ProvidePredictor,

		// HTTP layer
		ProvidePredictHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
