package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

type createRequest struct {
	Name           string   `json:"name" validate:"required,min=1,max=64"`
	Slug           string   `json:"slug" validate:"omitempty,min=1,max=64"`
	Tags           []string `json:"tags" validate:"omitempty,dive,max=64"`
	WithSampleData bool     `json:"withSampleData"`
}

type updateRequest struct {
	Name     *string           `json:"name" validate:"omitempty,min=1,max=64"`
	Slug     *string           `json:"slug" validate:"omitempty,min=1,max=64"`
	Tags     *[]string         `json:"tags"`
	Data     *model.ResumeData `json:"data" validate:"-"`
	IsPublic *bool             `json:"isPublic"`
}

type duplicateRequest struct {
	Name string   `json:"name" validate:"omitempty,max=64"`
	Slug string   `json:"slug" validate:"omitempty,max=64"`
	Tags []string `json:"tags"`
}

type importRequest struct {
	Format string `json:"format" validate:"required"`
	Name   string `json:"name"`
	// Data carries JSON formats inline; File carries binary documents as
	// base64.
	Data json.RawMessage `json:"data"`
	File []byte          `json:"file"`
}

type lockRequest struct {
	Locked bool `json:"locked"`
}

type passwordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=64"`
}

type intentRequest struct {
	Type string          `json:"type" validate:"required"`
	Data json.RawMessage `json:"data"`
}

type generateRequest struct {
	Kind  string `json:"kind" validate:"required,oneof=experience projects summary custom"`
	Input any    `json:"input"`
}

type suggestRequest struct {
	ResumeID        string `json:"resumeId" validate:"required,uuid"`
	Version         uint64 `json:"version"`
	Kind            string `json:"kind" validate:"required,oneof=experience projects summary custom"`
	TargetKind      string `json:"targetKind"`
	ItemID          string `json:"itemId"`
	CustomSectionID string `json:"customSectionId"`
	Input           any    `json:"input"`
}

type draftResponse struct {
	Version uint64            `json:"version"`
	Data    *model.ResumeData `json:"data"`
}

type resumeResponse struct {
	*domain.Resume
	HasPassword bool `json:"hasPassword"`
}

func toResponse(r *domain.Resume) resumeResponse {
	return resumeResponse{Resume: r, HasPassword: r.HasPassword()}
}

func toResponses(rs []*domain.Resume) []resumeResponse {
	out := make([]resumeResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toResponse(r))
	}
	return out
}

// bind parses the JSON body into v and validates it.
func (h *Handler) bind(c *fiber.Ctx, v any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(v); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
		}
	}
	return h.validate.Struct(v)
}

func paramID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid resume id")
	}
	return id, nil
}
