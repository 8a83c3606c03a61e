package main

import (
	"encoding/json"
	"maps"
	"net/http"
)

// response is the JSON envelope of every endpoint.
type response struct {
	Code  string       `json:"code,omitempty"`
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string              `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Details map[string][]string `json:"details,omitempty"`
}

// httpError is an error with a status code and a translation key.
type httpError struct {
	Status int
	Key    string
}

func (e httpError) Error() string { return e.Key }

var (
	errBadRequest           = httpError{Status: http.StatusBadRequest, Key: "bad_request"}
	errNotFound             = httpError{Status: http.StatusNotFound, Key: "not_found"}
	errUnsupportedMediaType = httpError{Status: http.StatusUnsupportedMediaType, Key: "unsupported_media_type"}
)

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err httpError, message string) {
	writeJSON(w, err.Status, response{
		Code:  err.Key,
		Error: &errorDetail{Code: err.Key, Message: message},
	})
}

func writeValidationError(w http.ResponseWriter, details map[string][]string, data any) {
	d := make(map[string][]string, len(details))
	maps.Copy(d, details)
	writeJSON(w, http.StatusUnprocessableEntity, response{
		Code: "validation_error",
		Data: data,
		Error: &errorDetail{
			Code:    "validation_error",
			Message: http.StatusText(http.StatusUnprocessableEntity),
			Details: d,
		},
	})
}
