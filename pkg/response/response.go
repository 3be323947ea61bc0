package response

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"seoanalyzer/internal/log"
)

type Response struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code,omitempty"`
	Message    string      `json:"message,omitempty"`
	Code       string      `json:"code,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	write(w, Response{
		Status:     http.StatusText(statusCode),
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

func Success(w http.ResponseWriter, data interface{}, message string) {
	JSON(w, http.StatusOK, data, message)
}

func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, nil, message)
}

// ErrorWithCode also carries a machine readable error code.
func ErrorWithCode(w http.ResponseWriter, statusCode int, code, message string) {
	write(w, Response{
		Status:     http.StatusText(statusCode),
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	})
}

// Raw encodes v as the whole body, without the envelope.
func Raw(w http.ResponseWriter, statusCode int, v interface{}) {
	encode(w, statusCode, v)
}

func write(w http.ResponseWriter, res Response) {
	encode(w, res.StatusCode, res)
}

func encode(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Logger.Error("failed to encode JSON response", zap.Error(err))
	}
}
