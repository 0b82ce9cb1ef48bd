package domain

import "fmt"

// APIError é o envelope de erro retornado pela plataforma de anúncios
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ad platform error %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}
