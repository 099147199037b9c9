package services

import (
	"regexp"
	"strings"

	"alfredoptarigan/resumai/internal/models"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// ParseMarkdown turns the model's markdown into export blocks. Only the subset
// the prompts ask for is understood: #/##/### headings, "* " and "- " bullets
// and **bold** runs. Anything else becomes a paragraph.
func ParseMarkdown(markdown string) []models.Block {
	blocks := []models.Block{}

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "### "), strings.HasPrefix(line, "#### "):
			blocks = append(blocks, heading(models.BlockHeading3, strings.TrimLeft(line, "#"), true))
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, heading(models.BlockHeading2, line[3:], false))
		case strings.HasPrefix(line, "# "):
			blocks = append(blocks, heading(models.BlockHeading1, line[2:], false))
		case strings.HasPrefix(line, "* "), strings.HasPrefix(line, "- "):
			blocks = append(blocks, models.Block{
				Kind:  models.BlockBullet,
				Spans: parseSpans(strings.TrimSpace(line[2:])),
			})
		case isRule(line):
		default:
			blocks = append(blocks, models.Block{
				Kind:  models.BlockParagraph,
				Spans: parseSpans(line),
			})
		}
	}

	return blocks
}

func heading(kind models.BlockKind, text string, bold bool) models.Block {
	text = strings.TrimSpace(strings.ReplaceAll(text, "**", ""))
	return models.Block{
		Kind:  kind,
		Spans: []models.Span{{Text: text, Bold: bold}},
	}
}

// "---" and "***" separators carry no text.
func isRule(line string) bool {
	if len(line) < 3 {
		return false
	}
	return strings.Trim(line, "-") == "" || strings.Trim(line, "*") == "" || strings.Trim(line, "_") == ""
}

func parseSpans(text string) []models.Span {
	var spans []models.Span
	appendSpan := func(s string, bold bool) {
		s = strings.ReplaceAll(s, "**", "")
		if s == "" {
			return
		}
		if n := len(spans); n > 0 && spans[n-1].Bold == bold {
			spans[n-1].Text += s
			return
		}
		spans = append(spans, models.Span{Text: s, Bold: bold})
	}

	last := 0
	for _, m := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		appendSpan(text[last:m[0]], false)
		appendSpan(text[m[2]:m[3]], true)
		last = m[1]
	}
	appendSpan(text[last:], false)

	if spans == nil {
		spans = []models.Span{}
	}
	return spans
}
