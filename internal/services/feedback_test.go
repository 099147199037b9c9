package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQualitativeFeedbackJSON(t *testing.T) {
	raw := "```json\n" + `{
  "match_score": 68,
  "missing_keywords": ["Kubernetes", "Terraform", "CI/CD"],
  "improvement_tips": ["Quantify your impact", "Mention cloud experience"],
  "summary": "Solid backend profile."
}` + "\n```"

	fb := parseQualitativeFeedback(raw)

	require.NotNil(t, fb.Score)
	assert.Equal(t, 68.0, *fb.Score)
	assert.Equal(t, []string{"Kubernetes", "Terraform", "CI/CD"}, fb.MissingKeywords)
	assert.Equal(t, []string{"Quantify your impact", "Mention cloud experience"}, fb.Suggestions)
	assert.Equal(t, "Solid backend profile.", fb.Summary)
}

func TestParseQualitativeFeedbackTolerantJSON(t *testing.T) {
	testCases := []struct {
		desc      string
		raw       string
		wantScore *float64
		wantKeys  []string
	}{
		{
			desc:      "score as string and keywords as comma list",
			raw:       `Here you go: {"match_score": "72%", "missing_keywords": "Go, gRPC"}`,
			wantScore: ptr(72.0),
			wantKeys:  []string{"Go", "gRPC"},
		},
		{
			desc:      "fractional score is a ratio",
			raw:       `{"match_score": 0.45}`,
			wantScore: ptr(45.0),
		},
		{
			desc:      "decimal one is a perfect ratio",
			raw:       `{"match_score": 1.0}`,
			wantScore: ptr(100.0),
		},
		{
			desc:      "integer one stays a percentage",
			raw:       `{"match_score": 1}`,
			wantScore: ptr(1.0),
		},
		{
			desc:      "out of range score is clamped",
			raw:       `{"match_score": 140, "missing_keywords": []}`,
			wantScore: ptr(100.0),
			wantKeys:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			fb := parseQualitativeFeedback(tc.raw)
			if tc.wantScore == nil {
				assert.Nil(t, fb.Score)
			} else {
				require.NotNil(t, fb.Score)
				assert.InDelta(t, *tc.wantScore, *fb.Score, 1e-9)
			}
			if tc.wantKeys != nil {
				assert.Equal(t, tc.wantKeys, fb.MissingKeywords)
			}
		})
	}
}

func TestParseQualitativeFeedbackSections(t *testing.T) {
	raw := `## Analysis

**Match Score:** 64/100

### 1. Missing Keywords
- Kubernetes
- Terraform, Helm
* **AWS**

### 2. Improvement Tips:
1. Add a summary: mention your backend focus.
2) Quantify results in each project.

Overall: good technical base.`

	fb := parseQualitativeFeedback(raw)

	require.NotNil(t, fb.Score)
	assert.Equal(t, 64.0, *fb.Score)
	assert.Equal(t, []string{"Kubernetes", "Terraform", "Helm", "AWS"}, fb.MissingKeywords)
	assert.Equal(t, []string{
		"Add a summary: mention your backend focus.",
		"Quantify results in each project.",
	}, fb.Suggestions)
	assert.Equal(t, "good technical base.", fb.Summary)
}

func TestParseQualitativeFeedbackIgnoresScoreInTips(t *testing.T) {
	raw := `Missing Keywords: Kubernetes, Terraform
Improvement Tips:
- Boost your score by adding 2 cloud projects
- Your score: raise it with 3 metrics per role
Summary: a score of 10 more points is within reach.`

	fb := parseQualitativeFeedback(raw)

	assert.Nil(t, fb.Score)
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, fb.MissingKeywords)
	assert.Equal(t, []string{
		"Boost your score by adding 2 cloud projects",
		"Your score: raise it with 3 metrics per role",
	}, fb.Suggestions)
	assert.Equal(t, "a score of 10 more points is within reach.", fb.Summary)
}

func TestScoreFromLabel(t *testing.T) {
	assert.Equal(t, 72.0, *scoreFromLabel("72%"))
	assert.Equal(t, 64.0, *scoreFromLabel("64/100."))
	assert.Equal(t, 85.5, *scoreFromLabel("85.5"))
	assert.Nil(t, scoreFromLabel("add 2 projects"))
}

func TestParseQualitativeFeedbackGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "\xff\xfe not json at all", "{broken json", "[1, 2, 3]"} {
		fb := parseQualitativeFeedback(raw)
		assert.Nil(t, fb.Score)
		assert.Empty(t, fb.MissingKeywords)
		assert.Empty(t, fb.Suggestions)
	}
}

func TestNormalizeKeywordsDropsSentences(t *testing.T) {
	got := normalizeKeywords([]string{
		" `Docker` ",
		"You should really consider learning more about cloud platforms",
		"",
		"**Go**.",
	})
	assert.Equal(t, []string{"Docker", "Go"}, got)
}

func ptr[T any](v T) *T {
	return &v
}
