package models

type Verdict string

const (
	VerdictLow     Verdict = "Low Match - Needs Work"
	VerdictAverage Verdict = "Average Match - Optimize Keywords"
	VerdictHigh    Verdict = "High Match - Ready to Apply"
)

func VerdictFor(score float64) Verdict {
	switch {
	case score < 50:
		return VerdictLow
	case score < 75:
		return VerdictAverage
	default:
		return VerdictHigh
	}
}

// MatchResult is the outcome of scoring one resume against one job
// description. It is never stored.
type MatchResult struct {
	Score             float64  `json:"score"`
	LexicalScore      float64  `json:"lexical_score"`
	QualitativeScore  *float64 `json:"qualitative_score,omitempty"`
	Verdict           Verdict  `json:"verdict"`
	MatchedKeywords   []string `json:"matched_keywords"`
	MissingKeywords   []string `json:"missing_keywords"`
	Suggestions       []string `json:"suggestions"`
	Feedback          string   `json:"feedback"`
	FeedbackAvailable bool     `json:"feedback_available"`
}
