// Package response writes JSON responses in the shape the gallery client
// expects: successful bodies are the resource itself, errors are
// {"error": message, "code": code}.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
	"github.com/shashiranjanraj/kalaghar/pkg/logger"
)

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// Message sends a 200 {"message": msg}.
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, map[string]string{"message": msg})
}

// Error sends a JSON error response for a bare status code.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, errorBody{Error: message, Code: codeFor(status)})
}

// Fail maps err onto its status and code. Internal errors are logged with
// the request-scoped logger and never leak their cause.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.As(err)
	if e.Kind == apperr.KindInternal {
		logger.WithCtx(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", e.Error(),
		)
	}
	JSON(w, e.Kind.Status(), errorBody{Error: e.Message, Code: e.Kind.Code(), Fields: e.Fields})
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
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return apperr.KindValidation.Code()
	case http.StatusUnauthorized:
		return apperr.KindUnauthorized.Code()
	case http.StatusForbidden:
		return apperr.KindForbidden.Code()
	case http.StatusNotFound:
		return apperr.KindNotFound.Code()
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusConflict:
		return apperr.KindConflict.Code()
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusTooManyRequests:
		return "rate_limited"
	}
	return apperr.KindInternal.Code()
}
