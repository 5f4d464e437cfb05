package trainer

import (
	"fmt"
	"os"

	"FraudScope/internal/dataset"
	"FraudScope/internal/ml"
	"FraudScope/pkg/config"
	"FraudScope/pkg/logger"
)

// Run fits the logistic regression and random forest classifiers against the
// clean dataset, reports evaluation metrics, and persists both artifacts.
func Run(cfg *config.Config, log *logger.Logger) error {
	X, y, columns, err := dataset.LoadMatrix(cfg.Dataset.CleanPath, cfg.Dataset.Label)
	if err != nil {
		return err
	}
	log.Info("clean dataset loaded",
		logger.String("path", cfg.Dataset.CleanPath),
		logger.Int("rows", len(X)),
		logger.Int("features", len(columns)),
	)

	XTrain, XTest, yTrain, yTest := dataset.StratifiedSplit(X, y, cfg.Trainer.TestRatio, cfg.Trainer.Seed)
	if len(XTest) == 0 {
		return fmt.Errorf("test split is empty; need more rows per class")
	}
	log.Info("dataset split", logger.Int("train", len(XTrain)), logger.Int("test", len(XTest)))

	weight := balancedWeight(yTrain)

	lr := ml.NewLogisticRegression(
		len(columns),
		cfg.Trainer.LR.LearningRate,
		cfg.Trainer.LR.Epochs,
		cfg.Trainer.LR.BatchSize,
		cfg.Trainer.Seed,
	)
	if err := lr.Fit(XTrain, yTrain, weight); err != nil {
		return fmt.Errorf("fit logistic regression: %w", err)
	}
	report(log, "logistic_regression", yTest, lr.Predict(XTest))

	rf := ml.NewRandomForest(
		ml.WithNEstimators(cfg.Trainer.RF.Trees),
		ml.WithForestMaxDepth(cfg.Trainer.RF.MaxDepth),
		ml.WithForestMinSplit(cfg.Trainer.RF.MinSamplesSplit),
		ml.WithForestSeed(cfg.Trainer.Seed),
		ml.WithBalancedSubsample(true),
	)
	if err := rf.Fit(XTrain, yTrain); err != nil {
		return fmt.Errorf("fit random forest: %w", err)
	}
	report(log, "random_forest", yTest, rf.Predict(XTest))

	// Single-row sanity check against held-out data.
	probe := 0
	if len(XTest) > 3 {
		probe = 3
	}
	log.Info("sanity check",
		logger.Int("actual", yTest[probe]),
		logger.Float64("lr_probability", lr.PredictProba(XTest[probe])),
		logger.Float64("rf_probability", rf.PredictProba(XTest[probe])),
	)

	if err := os.MkdirAll(cfg.Artifacts.Dir, 0o755); err != nil {
		return fmt.Errorf("create artifacts dir: %w", err)
	}
	if err := ml.Save(cfg.LRModelPath(), lr); err != nil {
		return err
	}
	if err := ml.Save(cfg.RFModelPath(), rf); err != nil {
		return err
	}

	log.Info("models saved",
		logger.String("lr", cfg.LRModelPath()),
		logger.String("rf", cfg.RFModelPath()),
	)
	return nil
}

// balancedWeight computes w_c = n / (2 * n_c) over the training labels.
func balancedWeight(y []int) [2]float64 {
	counts := [2]int{}
	for _, label := range y {
		counts[label]++
	}
	n := float64(len(y))
	w := [2]float64{1, 1}
	for c := 0; c < 2; c++ {
		if counts[c] > 0 {
			w[c] = n / (2 * float64(counts[c]))
		}
	}
	return w
}

func report(log *logger.Logger, name string, yTrue, yPred []int) {
	prec, rec, f1 := ml.PrecisionRecallF1(yTrue, yPred)
	cm := ml.Confusion(yTrue, yPred)
	log.Info("model performance",
		logger.String("model", name),
		logger.Float64("accuracy", ml.Accuracy(yTrue, yPred)),
		logger.Float64("precision", prec),
		logger.Float64("recall", rec),
		logger.Float64("f1", f1),
		logger.Any("confusion", [2][2]int(cm)),
	)
}
