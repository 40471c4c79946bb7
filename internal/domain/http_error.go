package domain

import (
	"errors"
	"net/http"
)

// HTTPError error de aplicación etiquetado con el status HTTP que debe devolver la API.
// Message es seguro para el cliente; Err (opcional) conserva la causa para logs y errors.Is.
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Wrap devuelve una copia del error con la causa adjunta.
func (e *HTTPError) Wrap(err error) *HTTPError {
	return &HTTPError{StatusCode: e.StatusCode, Message: e.Message, Err: err}
}

func newHTTPError(status int, message, def string) *HTTPError {
	if message == "" {
		message = def
	}
	return &HTTPError{StatusCode: status, Message: message}
}

// NewBadRequest 400.
func NewBadRequest(message string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message, "Bad request")
}

// NewUnauthorized 401.
func NewUnauthorized(message string) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message, "Unauthorized").Wrap(ErrUnauthorized)
}

// NewForbidden 403.
func NewForbidden(message string) *HTTPError {
	return newHTTPError(http.StatusForbidden, message, "Forbidden").Wrap(ErrForbidden)
}

// NewNotFound 404 con el mensaje "<resource> not found".
func NewNotFound(resource string) *HTTPError {
	if resource == "" {
		resource = "Resource"
	}
	return newHTTPError(http.StatusNotFound, resource+" not found", "").Wrap(ErrNotFound)
}

// NewConflict 409.
func NewConflict(message string) *HTTPError {
	return newHTTPError(http.StatusConflict, message, "Conflict").Wrap(ErrConflict)
}

// NewUnprocessableEntity 422.
func NewUnprocessableEntity(message string) *HTTPError {
	return newHTTPError(http.StatusUnprocessableEntity, message, "Unprocessable entity").Wrap(ErrInvalidInput)
}

// NewInternalServerError 500.
func NewInternalServerError(message string) *HTTPError {
	return newHTTPError(http.StatusInternalServerError, message, "Internal server error")
}

// AsHTTPError extrae el HTTPError de la cadena de err, si existe.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
