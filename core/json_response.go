package core

import (
	"encoding/json"
	"net/http"
)

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Data  any          `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail contains error information for clients.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

// RespondJSON writes a JSON payload with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(JSONResponse{Data: data})
}

// RespondError translates err and writes the matching JSON error body. The
// wire message is the stable key, not err.Error(), so internal detail never
// leaks to clients.
func RespondError(w http.ResponseWriter, err error) {
	httpErr := Translate(err)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(httpErr.Code)
	_ = json.NewEncoder(w).Encode(JSONResponse{Error: &ErrorDetail{
		Code:    httpErr.Key,
		Message: http.StatusText(httpErr.Code),
	}})
}
