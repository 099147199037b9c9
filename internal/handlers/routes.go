package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Sessions  *SessionHandler
	Documents *DocumentHandler
	ATS       *ATSHandler
}

// RegisterRoutes mounts the API under router. aiLimiter guards every route
// that calls the model; pass nil to disable it.
func RegisterRoutes(router fiber.Router, h Handlers, aiLimiter fiber.Handler) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	router.Get("/templates", h.Documents.HandleTemplates)

	load := h.Sessions.LoadSession
	router.Post("/sessions", h.Sessions.HandleCreate)
	router.Get("/sessions/:id", load, h.Sessions.HandleGet)
	router.Put("/sessions/:id/profile", load, h.Sessions.HandleUpdateProfile)
	router.Delete("/sessions/:id", load, h.Sessions.HandleDelete)

	generate := func(handler fiber.Handler) []fiber.Handler {
		if aiLimiter == nil {
			return []fiber.Handler{load, handler}
		}
		return []fiber.Handler{aiLimiter, load, handler}
	}
	router.Post("/sessions/:id/resume", generate(h.Documents.HandleResume)...)
	router.Post("/sessions/:id/cover-letter", generate(h.Documents.HandleCoverLetter)...)
	router.Post("/sessions/:id/portfolio", generate(h.Documents.HandlePortfolio)...)
	router.Post("/sessions/:id/ats/scan", generate(h.ATS.HandleScan)...)
}
