package dto

// HealthResponse represents the payload returned by the health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Details any    `json:"details,omitempty"`
}
