package api

import (
	"strings"

	"github.com/labstack/echo/v4"

	"FraudScope/internal/domain/models"
	"FraudScope/internal/usecase"
	xhttp "FraudScope/pkg/http"
	xlogger "FraudScope/pkg/logger"
)

// PredictHandler exposes the prediction API over Echo.
type PredictHandler struct {
	logger    *xlogger.Logger
	predictor *usecase.Predictor
}

func NewPredictHandler(logger *xlogger.Logger, predictor *usecase.Predictor) *PredictHandler {
	return &PredictHandler{logger: logger, predictor: predictor}
}

func (h *PredictHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Home)
	e.GET("/healthz", h.Health)
	e.POST("/predict", h.Predict)
}

// Home describes the API and the expected input schema.
func (h *PredictHandler) Home(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"message": "Fraud Detection API",
		"endpoints": map[string]interface{}{
			"POST /predict?model=lr|rf": map[string]interface{}{
				"expects_json": map[string]string{
					"amount":             "number (e.g. 350.0)",
					"category":           "string (e.g. 'Food')",
					"merchant":           "string (e.g. 'ShopSmart')",
					"timestamp":          "ISO datetime (e.g. '2025-10-10T14:30:00')",
					"location":           "string (e.g. 'New York')",
					"device":             "string (e.g. 'Mobile' or 'POS')",
					"card_present":       "0 or 1",
					"cvv_present":        "0 or 1",
					"card_bin":           "int (first 6 digits of card)",
					"ip_address":         "string (e.g. '192.168.1.45')",
					"chargeback_history": "int or float",
				},
			},
		},
	})
}

// Health reports process liveness.
func (h *PredictHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, xhttp.HealthBody{Status: "ok"})
}

// Predict validates the request, aligns the raw record, and scores it with
// the selected model.
func (h *PredictHandler) Predict(c echo.Context) error {
	choice := strings.ToLower(c.QueryParam("model"))
	if !h.predictor.HasModel(choice) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("Unknown model. Use ?model=lr or ?model=rf"))
	}

	record := models.RawRecord{}
	if err := c.Bind(&record); err != nil {
		// Treat an unreadable body as empty; the field check reports it.
		record = models.RawRecord{}
	}

	var missing []string
	for _, name := range models.RequiredFields {
		if _, ok := record[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("Missing fields: [%s]", strings.Join(missing, ", ")))
	}

	pred, err := h.predictor.Predict(choice, record)
	if err != nil {
		h.logger.Error("prediction failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalErrorf("Failed to prepare or predict: %v", err))
	}

	return xhttp.SuccessResponse(c, models.PredictResponse{
		Model:            pred.Model,
		Input:            record,
		FraudProbability: pred.Probability,
		PredictedIsFraud: pred.IsFraud,
	})
}
