package http

import (
	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/crud"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
)

type moveRequest struct {
	To int `json:"to" validate:"min=0"`
}

type hiddenRequest struct {
	Hidden bool `json:"hidden"`
}

// itemTarget reads the item route. ?customSectionId= selects a custom
// section of that kind.
func itemTarget(c *fiber.Ctx) (crud.Target, string, error) {
	kind := model.Kind(c.Params("kind"))
	if !kind.Valid() {
		return crud.Target{}, "", fiber.NewError(fiber.StatusBadRequest, "unknown item kind")
	}
	return crud.Target{Kind: kind, CustomSectionID: c.Query("customSectionId")}, c.Params("itemId"), nil
}

func (h *Handler) runOp(c *fiber.Ctx, op usecase.DraftOp) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.Intents.Edit(c.UserContext(), currentUser(c).ID, id, op)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *Handler) RemoveItem(c *fiber.Ctx) error {
	t, itemID, err := itemTarget(c)
	if err != nil {
		return err
	}
	return h.runOp(c, usecase.RemoveItem(t, itemID))
}

func (h *Handler) MoveItem(c *fiber.Ctx) error {
	t, itemID, err := itemTarget(c)
	if err != nil {
		return err
	}
	var req moveRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	return h.runOp(c, usecase.MoveItem(t, itemID, req.To))
}

func (h *Handler) SetItemHidden(c *fiber.Ctx) error {
	t, itemID, err := itemTarget(c)
	if err != nil {
		return err
	}
	var req hiddenRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	return h.runOp(c, usecase.SetItemHidden(t, itemID, req.Hidden))
}

func (h *Handler) RemoveCustomSection(c *fiber.Ctx) error {
	return h.runOp(c, usecase.RemoveCustomSection(c.Params("sectionId")))
}
