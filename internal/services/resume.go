package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resumai/internal/models"
	"alfredoptarigan/resumai/internal/repositories"
)

type ResumeService interface {
	Generate(ctx context.Context, session *models.Session, req models.ResumeRequest) (*models.Document, error)
}

type resumeService struct {
	generator TextGenerator
	prompts   *PromptBuilder
	sessions  repositories.SessionRepository
}

func NewResumeService(generator TextGenerator, prompts *PromptBuilder, sessions repositories.SessionRepository) ResumeService {
	return &resumeService{
		generator: generator,
		prompts:   prompts,
		sessions:  sessions,
	}
}

// Generate writes a resume from the session profile, with any fields in the
// request overriding it for this call only. An empty template means
// minimalist-clean.
func (s *resumeService) Generate(ctx context.Context, session *models.Session, req models.ResumeRequest) (*models.Document, error) {
	template := req.Template
	if template == "" {
		template = models.TemplateMinimalistClean
	}
	if !template.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTemplate, template)
	}

	profile := session.Profile
	if req.Profile != nil {
		profile = profile.Merge(*req.Profile)
	}
	if strings.TrimSpace(profile.Name) == "" || strings.TrimSpace(profile.Role) == "" {
		return nil, fmt.Errorf("%w: name and role are required", ErrMissingField)
	}

	log.Infof("📝 Generating %s resume for session %s", template, session.ID)

	text, err := s.generator.GenerateText(ctx, s.prompts.BuildResumePrompt(profile, template))
	if err != nil {
		return nil, fmt.Errorf("failed to generate resume: %w", err)
	}

	doc := &models.Document{
		Kind:     models.KindResume,
		Template: template,
		Title:    profile.Name + " - Resume",
		Filename: resumeFilename(profile.Name),
		Markdown: stripCodeFences(text),
		Blocks:   ParseMarkdown(text),
	}

	RecordHistory(s.sessions, session.ID, models.ActionGeneratedResume,
		fmt.Sprintf("%s (%s)", profile.Name, template.Label()))

	return doc, nil
}

// resumeFilename keeps letters, digits, '_' and '-', turning spaces into '_'.
func resumeFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}

	clean := strings.Trim(b.String(), "_")
	if clean == "" {
		clean = "My"
	}
	return clean + "_Resume.pdf"
}
