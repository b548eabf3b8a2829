// Package response writes the uniform JSON envelope every endpoint returns:
//
//	{"success": true, "message": "Stores fetched successfully", "data": {...}}
//
// success mirrors whether the HTTP status is 2xx; errors carry data: {}.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape of every response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Write sends the envelope with the given status. data defaults to an empty
// object so clients never have to null-check.
func Write(w http.ResponseWriter, status int, message string, data interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{ //nolint:errcheck
		Success: status >= 200 && status < 300,
		Message: message,
		Data:    data,
	})
}

// OK sends a 200 with data.
func OK(w http.ResponseWriter, message string, data interface{}) {
	Write(w, http.StatusOK, message, data)
}

// Created sends a 201 with data.
func Created(w http.ResponseWriter, message string, data interface{}) {
	Write(w, http.StatusCreated, message, data)
}

// Error sends an error envelope with an empty data object.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, message, nil)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, message)
}
