package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/tidwall/gjson"

	"alfredoptarigan/resumai/internal/models"
	"alfredoptarigan/resumai/internal/repositories"
)

const (
	defaultBio        = "I am a passionate developer skilled in Python and Data Science..."
	portfolioFilename = "index.html"
	maxProjectCards   = 30
)

//go:embed templates/portfolio.html.tmpl
var templateFS embed.FS

var portfolioTemplate = template.Must(template.ParseFS(templateFS, "templates/portfolio.html.tmpl"))

var projectSeparators = regexp.MustCompile(`\s+[-–]\s+|\s*:\s+`)

type PortfolioService interface {
	Generate(ctx context.Context, session *models.Session, req models.PortfolioRequest) (*models.PortfolioResponse, error)
}

type portfolioService struct {
	generator TextGenerator
	prompts   *PromptBuilder
	sessions  repositories.SessionRepository
	now       func() time.Time
}

func NewPortfolioService(generator TextGenerator, prompts *PromptBuilder, sessions repositories.SessionRepository) PortfolioService {
	return &portfolioService{
		generator: generator,
		prompts:   prompts,
		sessions:  sessions,
		now:       time.Now,
	}
}

// Generate builds the portfolio page. The model only structures the project
// notes; if it fails the notes are split locally and the page is still
// rendered, flagged as degraded.
func (s *portfolioService) Generate(ctx context.Context, session *models.Session, req models.PortfolioRequest) (*models.PortfolioResponse, error) {
	p := session.Profile
	portfolio := &models.Portfolio{
		Name:     firstNonBlank(req.Name, p.Name),
		Role:     firstNonBlank(req.Role, p.Role),
		Bio:      firstNonBlank(req.Bio, defaultBio),
		Email:    firstNonBlank(req.Email, p.Email),
		LinkedIn: firstNonBlank(req.LinkedIn, p.LinkedIn),
		GitHub:   firstNonBlank(req.GitHub, p.GitHub),
		Projects: []models.ProjectCard{},
		Year:     s.now().Year(),
	}
	if portfolio.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrMissingField)
	}

	rawProjects := firstNonBlank(req.Projects, p.Projects)
	degraded := false

	if rawProjects != "" {
		cards, err := s.structureProjects(ctx, rawProjects)
		if err != nil {
			log.Warnf("⚠️  Falling back to local project parsing: %v", err)
			cards = parseProjectsLocally(rawProjects)
			degraded = true
		}
		portfolio.Projects = cards
	}

	var buf bytes.Buffer
	if err := portfolioTemplate.Execute(&buf, portfolio); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	RecordHistory(s.sessions, session.ID, models.ActionGeneratedPortfolio, portfolio.Name)

	return &models.PortfolioResponse{
		Portfolio: portfolio,
		HTML:      buf.String(),
		Filename:  portfolioFilename,
		Degraded:  degraded,
	}, nil
}

func (s *portfolioService) structureProjects(ctx context.Context, rawProjects string) ([]models.ProjectCard, error) {
	text, err := s.generator.GenerateText(ctx, s.prompts.BuildPortfolioProjectsPrompt(rawProjects))
	if err != nil {
		return nil, err
	}

	cards := parseProjectCards(text)
	if len(cards) == 0 {
		return nil, fmt.Errorf("no project cards in model response: %s", truncate(text, 120))
	}

	return cards, nil
}

// parseProjectCards accepts either a bare JSON array or an object with a
// "projects" array.
func parseProjectCards(text string) []models.ProjectCard {
	js := extractJSON(text)
	if !gjson.Valid(js) {
		return nil
	}

	items := gjson.Parse(js)
	if items.IsObject() {
		items = items.Get("projects")
	}
	if !items.IsArray() {
		return nil
	}

	var cards []models.ProjectCard
	for _, item := range items.Array() {
		card := models.ProjectCard{
			Name:        strings.TrimSpace(firstOf(item, "name", "title").String()),
			Description: strings.TrimSpace(firstOf(item, "description", "summary").String()),
			TechStack:   techStack(firstOf(item, "tech_stack", "techStack", "tech", "technologies")),
		}
		if card.Name == "" && card.Description == "" {
			continue
		}
		if card.Name == "" {
			card.Name = "Project"
		}
		cards = append(cards, card)
		if len(cards) == maxProjectCards {
			break
		}
	}

	return cards
}

func techStack(v gjson.Result) string {
	if !v.IsArray() {
		return strings.TrimSpace(v.String())
	}
	var parts []string
	for _, item := range v.Array() {
		if s := strings.TrimSpace(item.String()); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// parseProjectsLocally splits free-text project notes into cards. Entries are
// separated by blank lines, or by line when there are none. The first line of
// an entry is read as "Name | Tech | Description" or "Name - Description".
func parseProjectsLocally(raw string) []models.ProjectCard {
	var cards []models.ProjectCard
	for _, entry := range splitEntries(raw) {
		lines := strings.Split(entry, "\n")
		head := cleanListItem(lines[0])
		rest := make([]string, 0, len(lines)-1)
		for _, l := range lines[1:] {
			if l = cleanListItem(l); l != "" {
				rest = append(rest, l)
			}
		}

		card := models.ProjectCard{Name: head}
		if parts := strings.Split(head, "|"); len(parts) > 1 {
			card.Name = strings.TrimSpace(parts[0])
			card.TechStack = strings.TrimSpace(parts[1])
			if len(parts) > 2 {
				rest = append([]string{strings.TrimSpace(strings.Join(parts[2:], "|"))}, rest...)
			}
		} else if loc := projectSeparators.FindStringIndex(head); loc != nil {
			card.Name = strings.TrimSpace(head[:loc[0]])
			rest = append([]string{strings.TrimSpace(head[loc[1]:])}, rest...)
		}
		card.Description = strings.Join(rest, " ")

		if card.Name == "" {
			continue
		}
		cards = append(cards, card)
		if len(cards) == maxProjectCards {
			break
		}
	}

	if cards == nil {
		cards = []models.ProjectCard{}
	}
	return cards
}

func splitEntries(raw string) []string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if raw == "" {
		return nil
	}

	var entries []string
	if strings.Contains(raw, "\n\n") {
		for _, e := range strings.Split(raw, "\n\n") {
			if e = strings.TrimSpace(e); e != "" {
				entries = append(entries, e)
			}
		}
		return entries
	}

	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}

func cleanListItem(line string) string {
	line = strings.TrimSpace(bulletPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
	return strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
}
