package http

import (
	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/dialog"
)

// Draft returns the live editor state of a resume.
func (h *Handler) Draft(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	sess, err := h.Sessions.Open(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	snap := sess.Store.Snapshot()
	return c.JSON(draftResponse{Version: snap.Version, Data: snap.Data})
}

// RunIntent parses a {type, data} message and runs it on the resume.
func (h *Handler) RunIntent(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req intentRequest
	if err := h.bind(c, &req); err != nil {
		return err
	}
	in, err := dialog.Parse(dialog.Type(req.Type), req.Data)
	if err != nil {
		return err
	}
	out, err := h.Intents.Run(c.UserContext(), currentUser(c).ID, id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
