package models

import "time"

type SessionResponse struct {
	ID        string    `json:"id"`
	Profile   Profile   `json:"profile"`
	History   []string  `json:"history"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSessionResponse(s *Session) SessionResponse {
	history := make([]string, 0, len(s.History))
	for _, h := range s.History {
		history = append(history, h.String())
	}

	return SessionResponse{
		ID:        s.ID.String(),
		Profile:   s.Profile,
		History:   history,
		CreatedAt: s.CreatedAt,
	}
}

type ResumeRequest struct {
	Template Template `json:"template"`
	Profile  *Profile `json:"profile,omitempty"`
}

type CoverLetterRequest struct {
	Name           string `json:"name"`
	Company        string `json:"company"`
	Role           string `json:"role"`
	JobDescription string `json:"job_description"`
}

type PortfolioRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	Projects string `json:"projects"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

type ATSScanRequest struct {
	ResumeText     string `json:"resume_text" form:"resume_text"`
	JobDescription string `json:"job_description" form:"job_description"`
}

type DocumentResponse struct {
	Document *Document `json:"document"`
}

type PortfolioResponse struct {
	Portfolio *Portfolio `json:"portfolio"`
	HTML      string     `json:"html"`
	Filename  string     `json:"filename"`
	Degraded  bool       `json:"degraded"`
}

type TemplateInfo struct {
	ID    Template `json:"id"`
	Label string   `json:"label"`
}
