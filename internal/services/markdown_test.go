package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resumai/internal/models"
)

const sampleResume = "```markdown\n" + `# **Jane Doe**
Backend Engineer | jane@example.com

## Summary
Built **high-throughput** APIs in Go.

## Projects
### Ledger | Go, PostgreSQL
* Cut p99 latency by **40%**
- Led a team of 3

---
` + "```"

func TestParseMarkdown(t *testing.T) {
	blocks := ParseMarkdown(sampleResume)

	want := []models.Block{
		{Kind: models.BlockHeading1, Spans: []models.Span{{Text: "Jane Doe"}}},
		{Kind: models.BlockParagraph, Spans: []models.Span{{Text: "Backend Engineer | jane@example.com"}}},
		{Kind: models.BlockHeading2, Spans: []models.Span{{Text: "Summary"}}},
		{Kind: models.BlockParagraph, Spans: []models.Span{
			{Text: "Built "},
			{Text: "high-throughput", Bold: true},
			{Text: " APIs in Go."},
		}},
		{Kind: models.BlockHeading2, Spans: []models.Span{{Text: "Projects"}}},
		{Kind: models.BlockHeading3, Spans: []models.Span{{Text: "Ledger | Go, PostgreSQL", Bold: true}}},
		{Kind: models.BlockBullet, Spans: []models.Span{
			{Text: "Cut p99 latency by "},
			{Text: "40%", Bold: true},
		}},
		{Kind: models.BlockBullet, Spans: []models.Span{{Text: "Led a team of 3"}}},
	}

	assert.Equal(t, want, blocks)
}

func TestParseMarkdownIsDeterministic(t *testing.T) {
	assert.Equal(t, ParseMarkdown(sampleResume), ParseMarkdown(sampleResume))
}

func TestParseSpans(t *testing.T) {
	testCases := []struct {
		desc string
		text string
		want []models.Span
	}{
		{"plain", "hello", []models.Span{{Text: "hello"}}},
		{"all bold", "**hello**", []models.Span{{Text: "hello", Bold: true}}},
		{"stray markers removed", "open ** only", []models.Span{{Text: "open  only"}}},
		{"empty bold ignored", "a****b", []models.Span{{Text: "ab"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.want, parseSpans(tc.text))
		})
	}
}
