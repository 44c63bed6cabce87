// Package services provides the orchestration layer above the analytics packages.
// Services validate requests, pick forecasters and turn failures into coded errors.
package services

// Error codes returned in ServiceError.Code
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeInvalidMethod    = "INVALID_METHOD"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeForecastFailed   = "FORECAST_FAILED"
	CodeCanceled         = "CANCELED"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"` // Underlying cause, reachable through errors.Is/As
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// wrapServiceError creates a ServiceError whose message and cause come from err
func wrapServiceError(code string, err error) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: err.Error(),
		Err:     err,
	}
}
