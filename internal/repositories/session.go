package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resumai/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id uuid.UUID) (*models.Session, error)
	UpdateProfile(id uuid.UUID, profile models.Profile) error
	AppendHistory(id uuid.UUID, action, details string) error
	Delete(id uuid.UUID) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}

	if err := r.db.Omit("History").Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// FindByID implements SessionRepository. History is returned newest first.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := r.db.
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	return &session, nil
}

// UpdateProfile implements SessionRepository.
func (r *sessionRepository) UpdateProfile(id uuid.UUID, profile models.Profile) error {
	var session models.Session
	if err := r.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to find session: %w", err)
	}

	session.Profile = profile
	session.UpdatedAt = time.Now()

	if err := r.db.Omit("History").Save(&session).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// AppendHistory implements SessionRepository.
func (r *sessionRepository) AppendHistory(id uuid.UUID, action, details string) error {
	var count int64
	if err := r.db.Model(&models.Session{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if count == 0 {
		return ErrSessionNotFound
	}

	entry := &models.HistoryEntry{
		SessionID: id,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

// Delete implements SessionRepository.
func (r *sessionRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.HistoryEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete history: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.Session{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete session: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrSessionNotFound
		}

		return nil
	})
}
