package httpx

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse es el cuerpo de todas las respuestas de error de la API.
// Las respuestas exitosas devuelven el recurso tal cual, sin sobre.
type ErrorResponse struct {
	Error *ErrorBody `json:"error,omitempty"`
	Meta  *Meta      `json:"meta,omitempty"`
}

// Meta contiene información adicional útil para debugging y trazabilidad.
type Meta struct {
	RequestID string `json:"request_id,omitempty"`
	TimeUTC   string `json:"time_utc,omitempty"`
}

// ErrorBody describe un error de forma estructurada.
// No exponer detalles internos (SQL, stacktrace, etc.) en producción.
type ErrorBody struct {
	Code    string       `json:"code,omitempty"`    // ej: "invalid_id", "not_found"
	Message string       `json:"message,omitempty"` // mensaje para humanos
	Fields  []FieldError `json:"fields,omitempty"`  // detalle por campo en validaciones
}

// FieldError es el error de un campo puntual del payload.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// JSON escribe body como JSON con headers correctos.
// Nota: si falla el encodeo, responde 500 de forma segura.
func JSON(w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		// Último recurso: no se pudo serializar JSON.
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"internal_error","message":"internal server error"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(append(payload, '\n'))
}

// Fail devuelve un error estructurado.
func Fail(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	FailFields(w, r, status, code, message, nil)
}

// FailFields devuelve un error con detalle por campo.
func FailFields(w http.ResponseWriter, r *http.Request, status int, code, message string, fields []FieldError) {
	JSON(w, status, ErrorResponse{
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
		Meta: &Meta{
			RequestID: RequestIDFrom(r),
			TimeUTC:   time.Now().UTC().Format(time.RFC3339),
		},
	})
}
