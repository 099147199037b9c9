package services

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"alfredoptarigan/resumai/internal/repositories"
)

// RecordHistory is best effort: a generated document or scan result is still
// returned when the history write fails.
func RecordHistory(repo repositories.SessionRepository, sessionID uuid.UUID, action, details string) {
	if err := repo.AppendHistory(sessionID, action, details); err != nil {
		log.Warnf("⚠️  Failed to record history %q for session %s: %v", action, sessionID, err)
	}
}
