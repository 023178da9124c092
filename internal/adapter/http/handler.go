package http

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"resume-builder/internal/usecase"
)

// Pinger checks the connection to the content provider.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the services the API is built on. Importer may be nil, which
// disables /resume/import and /ai/parse. AI may be nil, which disables
// /ai/test.
type Deps struct {
	Resumes   *usecase.ResumeService
	Sessions  *usecase.Sessions
	Intents   *usecase.Intents
	Generator *usecase.Generator
	Printer   *usecase.Printer
	Importer  usecase.Importer
	AI        Pinger
}

type Handler struct {
	Deps
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(d Deps, log zerolog.Logger) *Handler {
	return &Handler{Deps: d, validate: validator.New(), log: log.With().Str("component", "http").Logger()}
}

// NewApp returns a fiber app with every route registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          h.errorHandler,
		DisableStartupMessage: true,
		BodyLimit:             16 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(h.requestLogger)
	h.Register(app)
	return app
}

// Register mounts the routes. Literal paths come before parameterized
// ones because fiber matches in registration order.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/healthz", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	r := app.Group("/resume", h.identify)
	r.Get("/list", h.ListResumes)
	r.Get("/tags/list", h.ListTags)
	r.Get("/statistics/:id", h.Statistics)
	r.Post("/create", h.CreateResume)
	r.Post("/import", h.ImportResume)
	r.Get("/by-slug/:username/:slug", h.GetResumeBySlug)
	r.Get("/:id/draft", h.Draft)
	r.Post("/:id/intents", h.RunIntent)
	r.Delete("/:id/items/:kind/:itemId", h.RemoveItem)
	r.Post("/:id/items/:kind/:itemId/move", h.MoveItem)
	r.Post("/:id/items/:kind/:itemId/hidden", h.SetItemHidden)
	r.Delete("/:id/custom-sections/:sectionId", h.RemoveCustomSection)
	r.Post("/:id/set-locked", h.SetLocked)
	r.Post("/:id/set-password", h.SetPassword)
	r.Post("/:id/remove-password", h.RemovePassword)
	r.Post("/:id/duplicate", h.DuplicateResume)
	r.Get("/:id", h.GetResume)
	r.Put("/:id", h.UpdateResume)
	r.Delete("/:id", h.DeleteResume)

	ai := app.Group("/ai", h.identify)
	ai.Get("/test", h.TestAI)
	ai.Post("/generate", h.Generate)
	ai.Post("/suggest", h.Suggest)
	ai.Post("/parse", h.Parse)

	p := app.Group("/printer", h.identify)
	p.Get("/resume/:id/pdf", h.PrintPDF)
	p.Get("/resume/:id/html", h.PrintHTML)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
