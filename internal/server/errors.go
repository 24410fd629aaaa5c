package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/deptree/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusFor maps an error code to the HTTP status the service answers with.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidPackage, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeVersionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidRange, errors.ErrCodeDepthExceeded,
		errors.ErrCodeTooManyNodes, errors.ErrCodeCycle:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUpstream:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the JSON error body for err. Errors without a
// code are reported as INTERNAL_ERROR without exposing their text.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
		msg = "internal error"
	}
	writeJSON(w, StatusFor(code), errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
