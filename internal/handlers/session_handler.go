package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resumai/internal/models"
	"alfredoptarigan/resumai/internal/repositories"
)

const sessionLocalsKey = "session"

type SessionHandler struct {
	sessions repositories.SessionRepository
}

func NewSessionHandler(sessions repositories.SessionRepository) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

// LoadSession resolves :id and stores the session in the request locals for
// the handlers behind it.
func (h *SessionHandler) LoadSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID format",
			"code":  fiber.StatusBadRequest,
		})
	}

	session, err := h.sessions.FindByID(id)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Locals(sessionLocalsKey, session)
	return c.Next()
}

func sessionFrom(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(sessionLocalsKey).(*models.Session)
	return session
}

// HandleCreate handles POST /sessions. A profile in the body is optional.
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	var profile models.Profile
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&profile); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request payload",
				"code":  fiber.StatusBadRequest,
			})
		}
	}

	session := &models.Session{
		ID:      uuid.New(),
		Profile: profile,
	}
	if err := h.sessions.Create(session); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewSessionResponse(session))
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	return c.JSON(models.NewSessionResponse(sessionFrom(c)))
}

// HandleUpdateProfile handles PUT /sessions/:id/profile. The profile is
// replaced as a whole.
func (h *SessionHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	session := sessionFrom(c)

	var profile models.Profile
	if err := c.BodyParser(&profile); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
			"code":  fiber.StatusBadRequest,
		})
	}

	if err := h.sessions.UpdateProfile(session.ID, profile); err != nil {
		return errorResponse(c, err)
	}

	updated, err := h.sessions.FindByID(session.ID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(models.NewSessionResponse(updated))
}

// HandleDelete handles DELETE /sessions/:id and drops the profile and history.
func (h *SessionHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.sessions.Delete(sessionFrom(c).ID); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
