// Package httpjson reúne los helpers de respuesta que antes estaban duplicados
// en cada handler. Ya con cinco módulos valía la pena extraerlo.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"blood-donor-network/internal/platform/validation"
)

// ErrorBody es el cuerpo de error de toda la API.
type ErrorBody struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Message(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorBody{Message: msg})
}

func Invalid(w http.ResponseWriter, err error) {
	Write(w, http.StatusBadRequest, ErrorBody{
		Message: "Invalid data",
		Errors:  validation.Fields(err),
	})
}

func Internal(w http.ResponseWriter) {
	Message(w, http.StatusInternalServerError, "Internal server error")
}

// Decode lee el body JSON. Los campos desconocidos se rechazan.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var ve validation.Errors
		ve.Add("body", err.Error())
		return ve
	}
	return nil
}

// IsInvalid reporta si err es un error de validación.
func IsInvalid(err error) bool {
	return errors.Is(err, validation.ErrInvalid)
}
