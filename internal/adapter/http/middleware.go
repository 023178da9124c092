package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-builder/internal/domain"
)

const (
	headerUserID   = "X-User-ID"
	headerUsername = "X-Username"
	headerPassword = "X-Resume-Password"

	localUser = "user"
)

// identify resolves the caller from X-User-ID. Requests without it act as
// the guest user. Every user is registered on first sight.
func (h *Handler) identify(c *fiber.Ctx) error {
	u := domain.Guest()
	if raw := c.Get(headerUserID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid "+headerUserID)
		}
		u = domain.User{ID: id, Username: c.Get(headerUsername)}
		if u.Username == "" {
			u.Username = id.String()
		}
	}
	if err := h.Resumes.EnsureUser(c.UserContext(), u); err != nil {
		return err
	}
	c.Locals(localUser, u)
	return c.Next()
}

func currentUser(c *fiber.Ctx) domain.User {
	if u, ok := c.Locals(localUser).(domain.User); ok {
		return u
	}
	return domain.Guest()
}

func (h *Handler) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		status, _ = statusFor(err)
	}
	h.log.Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("took", time.Since(start)).
		Msg("request")
	return err
}
