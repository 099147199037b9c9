package services

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

type termVector map[string]float64

// tokenize lowercases text and splits it into terms. '+', '#' and '.' count as
// word characters so "c++", "c#" and "node.js" survive; stop words and
// single-rune tokens are dropped.
func tokenize(text string) []string {
	var tokens []string
	var word strings.Builder

	flush := func() {
		w := strings.Trim(word.String(), ".")
		word.Reset()
		if utf8.RuneCountInString(w) < 2 || !hasAlphaNum(w) || isStopWord(w) {
			return
		}
		tokens = append(tokens, w)
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

func hasAlphaNum(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// vectorize builds L2-normalised TF-IDF vectors over the vocabulary shared by
// docs, using raw term counts and smoothed idf: ln((1+n)/(1+df)) + 1.
func vectorize(docs ...[]string) []termVector {
	n := len(docs)
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	vectors := make([]termVector, n)
	for i, doc := range docs {
		vec := make(termVector, len(doc))
		for _, term := range doc {
			vec[term]++
		}

		var norm float64
		for term, count := range vec {
			w := count * (math.Log(float64(1+n)/float64(1+df[term])) + 1)
			vec[term] = w
			norm += w * w
		}

		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range vec {
				vec[term] /= norm
			}
		}
		vectors[i] = vec
	}

	return vectors
}

// cosine assumes both vectors are already normalised.
func cosine(a, b termVector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	var dot float64
	for term, w := range a {
		dot += w * b[term]
	}

	dot = math.Round(dot*1e6) / 1e6
	return math.Max(0, math.Min(1, dot))
}

// LexicalSimilarity is the TF-IDF cosine similarity of a and b in [0, 1].
func LexicalSimilarity(a, b string) float64 {
	return analyzeLexical(a, b).score
}

type lexicalAnalysis struct {
	score       float64
	resumeTerms map[string]bool
	matched     []string
	missing     []string
}

const maxKeywords = 20

func analyzeLexical(resumeText, jobDescription string) lexicalAnalysis {
	resumeTokens := tokenize(resumeText)
	jobTokens := tokenize(jobDescription)

	resumeTerms := make(map[string]bool, len(resumeTokens))
	for _, t := range resumeTokens {
		resumeTerms[t] = true
	}

	analysis := lexicalAnalysis{
		resumeTerms: resumeTerms,
		matched:     []string{},
		missing:     []string{},
	}
	if len(resumeTokens) == 0 || len(jobTokens) == 0 {
		return analysis
	}

	vectors := vectorize(resumeTokens, jobTokens)
	analysis.score = cosine(vectors[0], vectors[1])

	jobVec := vectors[1]
	var gap []string
	for term := range jobVec {
		if resumeTerms[term] {
			analysis.matched = append(analysis.matched, term)
		} else if isKeywordCandidate(term) {
			gap = append(gap, term)
		}
	}

	sort.Strings(analysis.matched)
	sort.Slice(gap, func(i, j int) bool {
		if jobVec[gap[i]] != jobVec[gap[j]] {
			return jobVec[gap[i]] > jobVec[gap[j]]
		}
		return gap[i] < gap[j]
	})

	if len(analysis.matched) > maxKeywords {
		analysis.matched = analysis.matched[:maxKeywords]
	}
	if len(gap) > maxKeywords {
		gap = gap[:maxKeywords]
	}
	analysis.missing = gap

	return analysis
}

// Pure numbers and very short fragments make poor keyword suggestions. Two-rune
// terms are kept only when they carry a symbol, as in "c#" or "c+".
func isKeywordCandidate(term string) bool {
	if utf8.RuneCountInString(term) < 3 && !strings.ContainsAny(term, "+#") {
		return false
	}
	for _, r := range term {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
