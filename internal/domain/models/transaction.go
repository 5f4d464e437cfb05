package models

// RawRecord is one raw, human-readable transaction as received over the wire.
// Field values arrive untyped; the feature aligner coerces them.
type RawRecord = map[string]interface{}

// RequiredFields lists the eleven fields a prediction request must carry.
// Order defines how missing fields are reported.
var RequiredFields = []string{
	"amount", "category", "merchant", "timestamp",
	"location", "device", "card_present", "cvv_present",
	"card_bin", "ip_address", "chargeback_history",
}

// ModelKeys maps the query-parameter model keys to reported model names.
var ModelKeys = map[string]string{
	"lr": "logistic_regression",
	"rf": "random_forest",
}

// Prediction is the outcome of scoring one record with one classifier.
type Prediction struct {
	Model       string  // reported model name
	Probability float64 // fraud probability, rounded to 4 decimals
	IsFraud     int     // 1 if the unrounded probability >= 0.5
}

// PredictResponse is the wire shape of a successful prediction.
type PredictResponse struct {
	Model            string    `json:"model"`
	Input            RawRecord `json:"input"`
	FraudProbability float64   `json:"fraud_probability"`
	PredictedIsFraud int       `json:"predicted_is_fraud"`
}
