package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// qualitativeFeedback is whatever could be salvaged from the model's ATS
// answer. Every field may be empty.
type qualitativeFeedback struct {
	Score           *float64
	MissingKeywords []string
	Suggestions     []string
	Summary         string
}

func (f qualitativeFeedback) empty() bool {
	return f.Score == nil && len(f.MissingKeywords) == 0 && len(f.Suggestions) == 0 && f.Summary == ""
}

var (
	scorePattern  = regexp.MustCompile(`^(\d{1,3}(?:\.\d+)?)\s*(?:%|/\s*100)?(?:[\s.,;)]|$)`)
	numberPattern = regexp.MustCompile(`\d{1,3}(?:\.\d+)?`)
	bulletPrefix  = regexp.MustCompile(`^(?:[-*•·]+|\d{1,2}[.)])\s*`)
)

const maxKeywordWords = 6

var scoreHeaders = map[string]bool{
	"score":               true,
	"match score":         true,
	"ats score":           true,
	"ats match score":     true,
	"overall score":       true,
	"overall match score": true,
	"compatibility score": true,
}

// parseQualitativeFeedback reads the model's answer. JSON is preferred; when
// none is found it falls back to "Missing Keywords" / "Improvement Tips"
// sections in free text.
func parseQualitativeFeedback(raw string) qualitativeFeedback {
	cleaned := stripCodeFences(sanitizeUTF8(raw))

	if js := extractJSON(cleaned); strings.HasPrefix(js, "{") && gjson.Valid(js) {
		if fb := feedbackFromJSON(gjson.Parse(js)); !fb.empty() {
			return fb
		}
	}

	return feedbackFromSections(cleaned)
}

func feedbackFromJSON(doc gjson.Result) qualitativeFeedback {
	fb := qualitativeFeedback{
		Score:           readScore(doc.Get("match_score")),
		MissingKeywords: readList(firstOf(doc, "missing_keywords", "missingKeywords", "keywords")),
		Suggestions:     readList(firstOf(doc, "improvement_tips", "improvementTips", "suggestions", "tips")),
		Summary:         strings.TrimSpace(firstOf(doc, "summary", "feedback").String()),
	}
	if fb.Score == nil {
		fb.Score = readScore(doc.Get("score"))
	}
	fb.MissingKeywords = normalizeKeywords(fb.MissingKeywords)

	return fb
}

func firstOf(doc gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := doc.Get(p); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func readScore(v gjson.Result) *float64 {
	switch v.Type {
	case gjson.Number:
		return clampScore(v.Float(), strings.Contains(v.Raw, "."))
	case gjson.String:
		m := numberPattern.FindString(v.String())
		if m == "" {
			return nil
		}
		return parseScore(m)
	default:
		return nil
	}
}

func parseScore(s string) *float64 {
	parsed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return clampScore(parsed, strings.Contains(s, "."))
}

// Values up to 1 written as decimals ("0.45", "1.0") are ratios; everything
// is clamped to [0, 100].
func clampScore(score float64, decimal bool) *float64 {
	if score > 0 && (score < 1 || (score == 1 && decimal)) {
		score *= 100
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return &score
}

func readList(v gjson.Result) []string {
	var items []string
	switch {
	case v.IsArray():
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				items = append(items, s)
			}
		}
	case v.Type == gjson.String:
		items = splitList(v.String())
	}
	return items
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type feedbackSection int

const (
	sectionNone feedbackSection = iota
	sectionKeywords
	sectionTips
	sectionSummary
	sectionScore
)

func feedbackFromSections(text string) qualitativeFeedback {
	var fb qualitativeFeedback
	var summary []string
	section := sectionNone

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if next, inline, ok := sectionHeader(line); ok {
			if next == sectionScore {
				if fb.Score == nil {
					fb.Score = scoreFromLabel(inline)
				}
				continue
			}
			section = next
			line = inline
			if line == "" {
				continue
			}
		}

		item := strings.TrimSpace(bulletPrefix.ReplaceAllString(line, ""))
		item = strings.TrimSpace(strings.ReplaceAll(item, "**", ""))
		if item == "" {
			continue
		}

		switch section {
		case sectionKeywords:
			fb.MissingKeywords = append(fb.MissingKeywords, splitList(item)...)
		case sectionTips:
			fb.Suggestions = append(fb.Suggestions, item)
		case sectionSummary:
			summary = append(summary, item)
		}
	}

	fb.MissingKeywords = normalizeKeywords(fb.MissingKeywords)
	fb.Summary = strings.Join(summary, " ")

	return fb
}

// scoreFromLabel reads the value after a "Match Score:" label, such as "72",
// "72%" or "64/100".
func scoreFromLabel(value string) *float64 {
	m := scorePattern.FindStringSubmatch(value)
	if m == nil {
		return nil
	}
	return parseScore(m[1])
}

// sectionHeader recognises lines such as "## 1. Missing Keywords:" and returns
// any content following the colon.
func sectionHeader(line string) (feedbackSection, string, bool) {
	head, inline, _ := strings.Cut(line, ":")
	head = strings.Trim(head, "#*_ ")
	head = strings.TrimSpace(bulletPrefix.ReplaceAllString(head, ""))
	head = strings.ToLower(strings.Trim(head, "#*_ "))

	if head == "" || len(head) > 40 {
		return sectionNone, "", false
	}

	var section feedbackSection
	switch {
	case scoreHeaders[head]:
		section = sectionScore
	case hasAnyPrefix(head, "missing keyword", "missing skill", "keywords"):
		section = sectionKeywords
	case hasAnyPrefix(head, "improvement", "tips", "suggestion", "recommendation"):
		section = sectionTips
	case hasAnyPrefix(head, "summary", "overall"):
		section = sectionSummary
	default:
		return sectionNone, "", false
	}

	return section, strings.TrimSpace(strings.Trim(inline, "*_ ")), true
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.Trim(k, " \t\"'`*_.;:")
		if k == "" || len(k) > 60 || len(strings.Fields(k)) > maxKeywordWords {
			continue
		}
		out = append(out, k)
	}
	return out
}
