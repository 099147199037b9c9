package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resumai/internal/models"
	"alfredoptarigan/resumai/internal/repositories"
)

const coverLetterFilename = "Cover_Letter.pdf"

var placeholderPattern = regexp.MustCompile(`\[[^\[\]\n]{1,40}\]`)

type CoverLetterService interface {
	Generate(ctx context.Context, session *models.Session, req models.CoverLetterRequest) (*models.Document, error)
}

type coverLetterService struct {
	generator TextGenerator
	prompts   *PromptBuilder
	sessions  repositories.SessionRepository
}

func NewCoverLetterService(generator TextGenerator, prompts *PromptBuilder, sessions repositories.SessionRepository) CoverLetterService {
	return &coverLetterService{
		generator: generator,
		prompts:   prompts,
		sessions:  sessions,
	}
}

func (s *coverLetterService) Generate(ctx context.Context, session *models.Session, req models.CoverLetterRequest) (*models.Document, error) {
	req.Name = firstNonBlank(req.Name, session.Profile.Name)
	req.Role = firstNonBlank(req.Role, session.Profile.Role)
	req.Company = strings.TrimSpace(req.Company)

	if req.Name == "" || req.Company == "" {
		return nil, fmt.Errorf("%w: name and company are required", ErrMissingField)
	}

	log.Infof("✉️  Drafting cover letter to %s for session %s", req.Company, session.ID)

	text, err := s.generator.GenerateText(ctx, s.prompts.BuildCoverLetterPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("failed to generate cover letter: %w", err)
	}

	letter := removePlaceholderLines(stripCodeFences(text))
	blocks := ParseMarkdown(letter)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("failed to generate cover letter: %w", ErrEmptyCompletion)
	}

	doc := &models.Document{
		Kind:     models.KindCoverLetter,
		Title:    "Cover Letter - " + req.Company,
		Filename: coverLetterFilename,
		Markdown: letter,
		Blocks:   blocks,
	}

	RecordHistory(s.sessions, session.ID, models.ActionGeneratedCoverLetter, req.Company)

	return doc, nil
}

// removePlaceholderLines drops lines that still carry "[Your Name]" style
// placeholders. Markdown links ("[text](url)") are left alone.
func removePlaceholderLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if hasPlaceholder(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func hasPlaceholder(line string) bool {
	for _, loc := range placeholderPattern.FindAllStringIndex(line, -1) {
		if loc[1] < len(line) && line[loc[1]] == '(' {
			continue
		}
		return true
	}
	return false
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
