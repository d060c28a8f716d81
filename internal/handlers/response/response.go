package response

import (
	"encoding/json"
	"net/http"
)

// Envelope wraps every successful payload.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Success    bool        `json:"success"`
}

type ErrorMessage struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Details    interface{} `json:"details,omitempty"`
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	err.Success = false
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

func WriteSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(Envelope{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Success:    true,
	})
}
