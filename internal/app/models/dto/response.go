package dto

// SuccessResponse is returned by endpoints that only report an outcome.
type SuccessResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Post updated successfully"`
}

// NewSuccessResponse builds a SuccessResponse.
func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}

// PongResponse is returned by /ping.
type PongResponse struct {
	Message string `json:"message" example:"pong"`
}

// HealthResponse reports backing store reachability.
type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services"`
}
