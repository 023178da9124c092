package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// printCSP lets the printed page style itself and load images and fonts,
// but never run script.
const printCSP = "default-src 'none'; style-src 'unsafe-inline'; img-src https: data:; font-src https: data:; base-uri 'none'; form-action 'none'"

func (h *Handler) PrintPDF(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	pdf, err := h.Printer.PDF(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, id))
	return c.Send(pdf)
}

func (h *Handler) PrintHTML(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	html, err := h.Printer.HTML(c.UserContext(), currentUser(c).ID, id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentSecurityPolicy, printCSP)
	c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
	return c.Send(html)
}
