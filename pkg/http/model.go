package http

// ErrorBody is the wire shape for all error responses.
type ErrorBody struct {
	Error string `json:"error"`
}

// HealthBody is the wire shape for the health endpoint.
type HealthBody struct {
	Status string `json:"status"`
}
