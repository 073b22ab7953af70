package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
// Los mensajes se muestran al usuario final tal cual.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("record already exists")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUnauthorized       = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access denied")

	// Ocupación
	ErrUnitOccupied   = errors.New("unit already occupied")
	ErrInvalidVacancy = errors.New("vacancy can only be set to available or pending while the unit has no active tenant")

	// Portal
	ErrPortalAccessExists = errors.New("tenant already has portal access")
	ErrNoPortalAccess     = errors.New("tenant does not have portal access")

	// Documentos
	ErrNoFile                = errors.New("no file uploaded")
	ErrFileTooLarge          = errors.New("file exceeds the maximum allowed size")
	ErrFileTypeNotAllowed    = errors.New("file type not allowed")
	ErrStorageFailed         = errors.New("file could not be stored")
	ErrFileMissingAfterStore = errors.New("file was not found after storing it")
)

// ValidationError errores de validación por campo (clave = nombre JSON del campo).
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError construye un ValidationError vacío.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra un error para el campo; conserva el primero.
func (e *ValidationError) Add(field, msg string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// HasErrors indica si se registró algún campo.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil devuelve nil si no hay errores (evita el nil tipado en interfaces).
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// UploadError fallo de una carga de documento; el mensaje se muestra al usuario.
type UploadError struct {
	Reason error
}

func (e *UploadError) Error() string {
	return "Failed to upload document: " + e.Reason.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Reason
}
