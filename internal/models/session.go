package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the flat set of free-text fields a user fills in once and reuses
// across the resume, portfolio and cover letter tools.
type Profile struct {
	Name       string `gorm:"type:text" json:"name"`
	Email      string `gorm:"type:text" json:"email"`
	Phone      string `gorm:"type:text" json:"phone"`
	Role       string `gorm:"type:text" json:"role"`
	LinkedIn   string `gorm:"type:text" json:"linkedin"`
	GitHub     string `gorm:"type:text" json:"github"`
	Education  string `gorm:"type:text" json:"education"`
	Skills     string `gorm:"type:text" json:"skills"`
	Experience string `gorm:"type:text" json:"experience"`
	Projects   string `gorm:"type:text" json:"projects"`
}

// Merge returns p with every non-empty field of override applied on top.
func (p Profile) Merge(override Profile) Profile {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}

	return Profile{
		Name:       pick(p.Name, override.Name),
		Email:      pick(p.Email, override.Email),
		Phone:      pick(p.Phone, override.Phone),
		Role:       pick(p.Role, override.Role),
		LinkedIn:   pick(p.LinkedIn, override.LinkedIn),
		GitHub:     pick(p.GitHub, override.GitHub),
		Education:  pick(p.Education, override.Education),
		Skills:     pick(p.Skills, override.Skills),
		Experience: pick(p.Experience, override.Experience),
		Projects:   pick(p.Projects, override.Projects),
	}
}

type Session struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Profile   Profile        `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
	History   []HistoryEntry `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"history"`
	CreatedAt time.Time      `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

type HistoryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID uuid.UUID `gorm:"type:uuid;index;not null" json:"-"`
	Action    string    `gorm:"type:text" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (HistoryEntry) TableName() string {
	return "session_history"
}

func (h HistoryEntry) String() string {
	return h.Action + " - " + h.Details
}

const (
	ActionGeneratedResume      = "Generated Resume"
	ActionGeneratedPortfolio   = "Generated Portfolio"
	ActionGeneratedCoverLetter = "Generated Cover Letter"
	ActionATSScan              = "ATS Scan Performed"
)
