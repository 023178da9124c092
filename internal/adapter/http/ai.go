package http

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-builder/internal/importer"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
)

// TestAI reports whether the content provider answers.
func (h *Handler) TestAI(c *fiber.Ctx) error {
	if h.AI == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "ai is not configured")
	}
	if err := h.AI.Ping(c.UserContext()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *Handler) Generate(c *fiber.Ctx) error {
	var req generateRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	out, err := h.Generator.Generate(c.UserContext(), req.Kind, req.Input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"content": out})
}

// Suggest generates content and writes it into the draft at the given
// version.
func (h *Handler) Suggest(c *fiber.Ctx) error {
	var req suggestRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	id, err := uuid.Parse(req.ResumeID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid resume id")
	}
	target := usecase.SuggestTarget{
		Kind:            model.Kind(req.TargetKind),
		ItemID:          req.ItemID,
		CustomSectionID: req.CustomSectionID,
	}
	out, err := h.Generator.Suggest(c.UserContext(), currentUser(c).ID, id, req.Version, target, req.Kind, req.Input)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Parse converts an uploaded document to resume data without storing it.
// The format comes from the "format" field or the file extension.
func (h *Handler) Parse(c *fiber.Ctx) error {
	if h.Importer == nil {
		return importer.ErrUnsupportedFormat
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	format := c.FormValue("format")
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	}
	out, err := h.Importer.Import(c.UserContext(), importer.Source{Format: importer.Format(format), Name: fh.Filename, Data: data})
	if err != nil {
		return err
	}
	return c.JSON(out)
}
