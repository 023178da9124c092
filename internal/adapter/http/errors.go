package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/crud"
	"resume-builder/internal/dialog"
	"resume-builder/internal/domain"
	"resume-builder/internal/editor"
	"resume-builder/internal/importer"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/ai"
)

var badRequest = []error{
	usecase.ErrInvalidInput,
	usecase.ErrNoIntent,
	model.ErrInvalid,
	model.ErrUnknownKind,
	model.ErrKindMismatch,
	dialog.ErrUnknownIntent,
	dialog.ErrInvalidData,
	crud.ErrNilItem,
	crud.ErrMissingID,
	crud.ErrBadIndex,
	crud.ErrDuplicate,
	importer.ErrUnsupportedFormat,
	importer.ErrEmptySource,
	ai.ErrUnknownKind,
}

// statusFor maps an error to its HTTP status and the message sent to the
// client. Document state errors use stable machine-readable codes.
func statusFor(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fe.Message
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, ve.Error()
	}

	switch {
	case errors.Is(err, domain.ErrSlugExists):
		return fiber.StatusBadRequest, domain.ErrSlugExists.Error()
	case errors.Is(err, domain.ErrLocked):
		return fiber.StatusForbidden, domain.ErrLocked.Error()
	case errors.Is(err, domain.ErrPasswordRequired):
		return fiber.StatusUnauthorized, domain.ErrPasswordRequired.Error()
	case errors.Is(err, domain.ErrInvalidPassword):
		return fiber.StatusUnauthorized, domain.ErrInvalidPassword.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, editor.ErrStale):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, ai.ErrProvider):
		return fiber.StatusBadGateway, err.Error()
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return fiber.StatusBadRequest, err.Error()
		}
	}
	return fiber.StatusInternalServerError, "internal error"
}

func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	status, msg := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
