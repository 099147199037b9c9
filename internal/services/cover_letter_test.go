package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resumai/internal/models"
	"alfredoptarigan/resumai/internal/repositories"
)

func TestCoverLetterGenerate(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	session := newTestSession(t, repo, models.Profile{Name: "Jane Doe", Role: "Backend Engineer"})
	gen := &fakeGenerator{text: `[Date]
Dear Hiring Manager,

I am excited to apply for the **Backend Engineer** role at Acme.
See my work at [my site](https://example.com).

Sincerely,
[Your Name]
Jane Doe`}

	doc, err := NewCoverLetterService(gen, NewPromptBuilder(), repo).Generate(context.Background(), session, models.CoverLetterRequest{
		Company:        "Acme",
		JobDescription: "Build APIs in Go",
	})

	require.NoError(t, err)
	assert.Equal(t, models.KindCoverLetter, doc.Kind)
	assert.Equal(t, "Cover_Letter.pdf", doc.Filename)
	assert.NotContains(t, doc.Markdown, "[Date]")
	assert.NotContains(t, doc.Markdown, "[Your Name]")
	assert.Contains(t, doc.Markdown, "[my site](https://example.com)")
	assert.True(t, len(doc.Blocks) > 0)
	assert.Equal(t, "Dear Hiring Manager,", doc.Blocks[0].PlainText())

	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Write a professional cover letter for Jane Doe to Acme for the role of Backend Engineer.")
	assert.Contains(t, prompt, "Sign off with the user's actual name: Jane Doe.")

	stored, err := repo.FindByID(session.ID)
	require.NoError(t, err)
	require.Len(t, stored.History, 1)
	assert.Equal(t, "Generated Cover Letter - Acme", stored.History[0].String())
}

func TestCoverLetterRequiresCompanyAndName(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	session := newTestSession(t, repo, models.Profile{})
	gen := &fakeGenerator{text: "Dear team"}
	svc := NewCoverLetterService(gen, NewPromptBuilder(), repo)

	_, err := svc.Generate(context.Background(), session, models.CoverLetterRequest{Company: "Acme"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = svc.Generate(context.Background(), session, models.CoverLetterRequest{Name: "Jane", Company: " "})
	assert.ErrorIs(t, err, ErrMissingField)

	assert.Equal(t, 0, gen.Calls())
}

func TestCoverLetterOnlyPlaceholders(t *testing.T) {
	repo := repositories.NewMemorySessionRepository()
	session := newTestSession(t, repo, models.Profile{Name: "Jane"})
	gen := &fakeGenerator{text: "[Your Name]\n[Company Address]"}

	_, err := NewCoverLetterService(gen, NewPromptBuilder(), repo).Generate(context.Background(), session, models.CoverLetterRequest{Company: "Acme"})

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestRemovePlaceholderLines(t *testing.T) {
	in := "Hello\n[Manager Name], welcome\nvisit [docs](http://x)\n"
	assert.Equal(t, "Hello\nvisit [docs](http://x)", removePlaceholderLines(in))
}
