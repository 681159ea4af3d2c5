package validation

import (
	"errors"
	"strings"
)

// ErrInvalid es el sentinel para cualquier error de validación de entrada.
// errors.Is(err, ErrInvalid) es true para Errors.
var ErrInvalid = errors.New("invalid data")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors acumula errores por campo.
type Errors []FieldError

func (e *Errors) Add(field, msg string) {
	*e = append(*e, FieldError{Field: field, Message: msg})
}

// Required agrega un error si v está vacío (tras trim).
func (e *Errors) Required(field, v string) {
	if strings.TrimSpace(v) == "" {
		e.Add(field, "required")
	}
}

// Err devuelve nil si no hay errores.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid data: " + strings.Join(parts, "; ")
}

func (e Errors) Is(target error) bool {
	return target == ErrInvalid
}

// Fields extrae los errores por campo de err, si los hay.
func Fields(err error) []FieldError {
	var ve Errors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
