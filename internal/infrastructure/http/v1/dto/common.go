// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// SuccessResponse is the plain success envelope.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataResponse wraps payloads with the success envelope.
type DataResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// NewDataResponse creates a success envelope around data.
func NewDataResponse(message string, data any) DataResponse {
	return DataResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}
