package dto

// SuccessResponse sobre de las respuestas exitosas: {success, message, data}.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse cuerpo de error HTTP: {success:false, message, detail}.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// NewSuccess construye el sobre de éxito.
func NewSuccess(message string, data any) SuccessResponse {
	return SuccessResponse{Success: true, Message: message, Data: data}
}

// NewError construye el sobre de error.
func NewError(message, detail string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message, Detail: detail}
}

// FieldError error de validación de un campo del request.
type FieldError struct {
	Path    string
	Message string
}

// String "<path> - <message>".
func (e FieldError) String() string {
	return e.Path + " - " + e.Message
}
