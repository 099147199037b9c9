package services

import (
	"context"
	"math"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"alfredoptarigan/resumai/internal/models"
)

const (
	feedbackUnavailable = "AI feedback unavailable: the analysis service could not be reached. The score below is keyword-based only."
	feedbackNeedsInput  = "Both resume text and a job description are required for a scan."
)

// ATSService scores a resume against a job description. Scan never fails: when
// the model is unavailable the keyword score is returned on its own.
type ATSService interface {
	Scan(ctx context.Context, resumeText, jobDescription string) *models.MatchResult
}

type atsService struct {
	generator TextGenerator
	prompts   *PromptBuilder
}

func NewATSService(generator TextGenerator, prompts *PromptBuilder) ATSService {
	return &atsService{
		generator: generator,
		prompts:   prompts,
	}
}

func (a *atsService) Scan(ctx context.Context, resumeText, jobDescription string) *models.MatchResult {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return &models.MatchResult{
			Verdict:         models.VerdictFor(0),
			MatchedKeywords: []string{},
			MissingKeywords: []string{},
			Suggestions:     []string{},
			Feedback:        feedbackNeedsInput,
		}
	}

	lexical := analyzeLexical(resumeText, jobDescription)

	result := &models.MatchResult{
		LexicalScore:    lexical.score,
		MatchedKeywords: lexical.matched,
		Suggestions:     []string{},
	}

	var feedback qualitativeFeedback
	raw, err := a.generator.GenerateText(ctx, a.prompts.BuildATSFeedbackPrompt(resumeText, jobDescription))
	if err != nil {
		log.Warnf("⚠️  ATS feedback unavailable, falling back to keyword score: %v", err)
		result.Feedback = feedbackUnavailable
	} else {
		feedback = parseQualitativeFeedback(raw)
		result.FeedbackAvailable = true
		result.Feedback = stripCodeFences(raw)
		if feedback.Suggestions != nil {
			result.Suggestions = feedback.Suggestions
		}
	}

	result.QualitativeScore = feedback.Score
	result.Score = blendScores(lexical.score, feedback.Score)
	result.Verdict = models.VerdictFor(result.Score)
	result.MissingKeywords = mergeMissingKeywords(lexical.resumeTerms, feedback.MissingKeywords, lexical.missing)

	return result
}

// blendScores averages the keyword score (as a percentage) with the model's
// score when there is one. The result is rounded to two decimals.
func blendScores(lexical float64, qualitative *float64) float64 {
	score := lexical * 100
	if qualitative != nil {
		score = (score + *qualitative) / 2
	}
	return math.Round(score*100) / 100
}

// mergeMissingKeywords lists model keywords first, then lexical gap terms.
// Duplicates (case-insensitive) and keywords already covered by the resume are
// dropped.
func mergeMissingKeywords(resumeTerms map[string]bool, lists ...[]string) []string {
	seen := make(map[string]bool)
	merged := []string{}

	for _, list := range lists {
		for _, keyword := range list {
			key := strings.ToLower(strings.TrimSpace(keyword))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true

			if keywordCovered(keyword, resumeTerms) {
				continue
			}
			merged = append(merged, keyword)
			if len(merged) == maxKeywords {
				return merged
			}
		}
	}

	return merged
}

// keywordCovered reports whether every meaningful token of keyword already
// appears in the resume. Keywords made only of stop words count as covered.
func keywordCovered(keyword string, resumeTerms map[string]bool) bool {
	for _, token := range tokenize(keyword) {
		if !resumeTerms[token] {
			return false
		}
	}
	return true
}
