package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
	"github.com/jhoicas/estatedesk-api/internal/domain"
)

// errorStatus código HTTP y código de error para cada error de dominio.
type errorStatus struct {
	err    error
	status int
	code   string
}

// El orden importa: el primer errors.Is que coincida gana.
var errorTable = []errorStatus{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUnitOccupied, fiber.StatusConflict, "UNIT_OCCUPIED"},
	{domain.ErrPortalAccessExists, fiber.StatusConflict, "PORTAL_ACCESS_EXISTS"},
	{domain.ErrNoPortalAccess, fiber.StatusConflict, "NO_PORTAL_ACCESS"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrInvalidVacancy, fiber.StatusConflict, "INVALID_VACANCY"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrNoFile, fiber.StatusBadRequest, "NO_FILE"},
	{domain.ErrFileTooLarge, fiber.StatusBadRequest, "FILE_TOO_LARGE"},
	{domain.ErrFileTypeNotAllowed, fiber.StatusBadRequest, "FILE_TYPE_NOT_ALLOWED"},
	{domain.ErrStorageFailed, fiber.StatusInternalServerError, "UPLOAD_FAILED"},
	{domain.ErrFileMissingAfterStore, fiber.StatusInternalServerError, "UPLOAD_FAILED"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "INVALID_INPUT"},
}

// respondError traduce un error de caso de uso a la respuesta HTTP. Es el único lugar
// donde se decide el código de estado.
func respondError(c *fiber.Ctx, err error) error {
	var uerr *domain.UploadError
	var verr *domain.ValidationError
	isUpload := errors.As(err, &uerr)

	if errors.As(err, &verr) {
		msg := "The given data was invalid."
		if isUpload {
			msg = uerr.Error()
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg, Fields: verr.Fields})
	}

	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: messageFor(err, e.err)})
		}
	}

	if isUpload {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "UPLOAD_FAILED", Message: uerr.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "internal server error"})
}

// messageFor mensaje visible: el texto completo si el error envuelve un sentinel con
// contexto útil ("file type not allowed: allowed types are ..."), si no el sentinel.
func messageFor(err, sentinel error) string {
	var uerr *domain.UploadError
	if errors.As(err, &uerr) {
		return uerr.Error()
	}
	switch sentinel {
	case domain.ErrFileTooLarge, domain.ErrFileTypeNotAllowed, domain.ErrInvalidInput:
		return err.Error()
	}
	return sentinel.Error()
}

// ErrorHandler manejador global de fiber (fiber.Config) para errores no atendidos por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
