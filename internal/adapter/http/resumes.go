package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/domain"
	"resume-builder/internal/importer"
	"resume-builder/internal/usecase"
)

func (h *Handler) ListResumes(c *fiber.Ctx) error {
	f := domain.ListFilter{Sort: domain.Sort(c.Query("sort"))}
	if raw := c.Query("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				f.Tags = append(f.Tags, t)
			}
		}
	}
	list, err := h.Resumes.List(c.UserContext(), currentUser(c).ID, f)
	if err != nil {
		return err
	}
	return c.JSON(toResponses(list))
}

func (h *Handler) ListTags(c *fiber.Ctx) error {
	tags, err := h.Resumes.Tags(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return err
	}
	return c.JSON(tags)
}

func (h *Handler) Statistics(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	stats, err := h.Resumes.Statistics(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	res, err := h.Resumes.Get(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	return c.JSON(toResponse(res))
}

func (h *Handler) GetResumeBySlug(c *fiber.Ctx) error {
	res, err := h.Resumes.GetBySlug(c.UserContext(), c.Params("username"), c.Params("slug"), currentUser(c).ID, c.Get(headerPassword))
	if err != nil {
		return err
	}
	return c.JSON(toResponse(res))
}

func (h *Handler) CreateResume(c *fiber.Ctx) error {
	var req createRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	res, err := h.Resumes.Create(c.UserContext(), currentUser(c).ID, usecase.CreateInput{
		Name: req.Name, Slug: req.Slug, Tags: req.Tags, WithSampleData: req.WithSampleData,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(res))
}

func (h *Handler) ImportResume(c *fiber.Ctx) error {
	if h.Importer == nil {
		return importer.ErrUnsupportedFormat
	}
	var req importRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	src := importer.Source{Format: importer.Format(req.Format), Name: req.Name, Data: req.Data}
	if len(req.File) > 0 {
		src.Data = req.File
	}
	data, err := h.Importer.Import(c.UserContext(), src)
	if err != nil {
		return err
	}
	res, err := h.Resumes.Import(c.UserContext(), currentUser(c).ID, data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(res))
}

// UpdateResume is a full save. It bypasses the editor, so any open draft
// session is dropped and reloads on next use.
func (h *Handler) UpdateResume(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req updateRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	res, err := h.Resumes.Update(c.UserContext(), currentUser(c).ID, id, usecase.UpdateInput{
		Name: req.Name, Slug: req.Slug, Tags: req.Tags, Data: req.Data, IsPublic: req.IsPublic,
	})
	if err != nil {
		return err
	}
	return c.JSON(toResponse(res))
}

func (h *Handler) SetLocked(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req lockRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	res, err := h.Resumes.SetLocked(c.UserContext(), currentUser(c).ID, id, req.Locked)
	if err != nil {
		return err
	}
	return c.JSON(toResponse(res))
}

func (h *Handler) SetPassword(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req passwordRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	if err := h.Resumes.SetPassword(c.UserContext(), currentUser(c).ID, id, req.Password); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) RemovePassword(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Resumes.RemovePassword(c.UserContext(), currentUser(c).ID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) DuplicateResume(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req duplicateRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	res, err := h.Resumes.Duplicate(c.UserContext(), currentUser(c).ID, id, usecase.DuplicateInput{
		Name: req.Name, Slug: req.Slug, Tags: req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(res))
}

func (h *Handler) DeleteResume(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Resumes.Delete(c.UserContext(), currentUser(c).ID, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
