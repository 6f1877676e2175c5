package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// minClaimLength drops fragments too short to be checkable statements
const minClaimLength = 10

var (
	sentenceBoundary = regexp.MustCompile(`[.!?]\s+[A-Z]`)
	whitespaceRun    = regexp.MustCompile(`\s+`)

	markdownBold   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	markdownItalic = regexp.MustCompile(`\*(.*?)\*`)
	markdownCode   = regexp.MustCompile("`(.*?)`")

	// Sentences that are discourse glue, hedges or questions rather than
	// checkable statements.
	skipPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(however|therefore|thus|hence|consequently)`),
		regexp.MustCompile(`^(in conclusion|to summarize|in summary)`),
		regexp.MustCompile(`^(i think|i believe|i feel|it seems|perhaps|maybe)`),
		regexp.MustCompile(`\?$`),
		regexp.MustCompile(`^(let me|let us|we should|you should)`),
	}

	// Each indicator names the heuristic that fired, so a claim records why
	// it was selected.
	factualIndicators = []struct {
		name    string
		pattern *regexp.Regexp
		cased   bool // match against the original sentence, not the lowered one
	}{
		{"year", regexp.MustCompile(`\b(19|20)\d{2}\b`), false},
		{"month", regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`), false},
		{"proper-noun", regexp.MustCompile(`\b[A-Z][a-z]+(\s+[A-Z][a-z]+)+\b`), true},
		{"duration", regexp.MustCompile(`\b\d+(\.\d+)?\s*(years?|months?|days?|hours?|minutes?|seconds?)\b`), false},
		{"measurement", regexp.MustCompile(`\b\d+(\.\d+)?\s*(degrees?|celsius|fahrenheit|km|miles?|meters?|feet)\b`), false},
		{"fact-verb", regexp.MustCompile(`\b(was|were|is|are|born|died|created|invented|discovered|founded|established)\b`), false},
		{"fact-verb", regexp.MustCompile(`\b(published|released|developed|wrote|served|became|graduated)\b`), false},
		{"location", regexp.MustCompile(`\bin\s+[A-Z][a-z]+`), true},
		{"award", regexp.MustCompile(`\b(won|received|awarded|prize|nobel|award)\b`), false},
		{"science-term", regexp.MustCompile(`\b(theory|law|principle|equation|formula|theorem)\b`), false},
	}
)

// RuleExtractor selects claim sentences with regex heuristics: skip
// discourse glue, keep sentences carrying a factual indicator (dates, names,
// measurements, fact verbs). Deterministic and offline.
type RuleExtractor struct{}

// NewRuleExtractor creates the rule-based extractor
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// Extract splits text into sentences and keeps the ones that look like
// verifiable factual claims. The error return exists to satisfy Extractor;
// it is always nil.
func (e *RuleExtractor) Extract(_ context.Context, text string) ([]model.Claim, error) {
	var claims []model.Claim
	for i, sentence := range splitSentences(text) {
		heuristic, ok := factualIndicator(sentence)
		if !ok {
			continue
		}
		claim := cleanClaim(sentence)
		if len(claim) <= minClaimLength {
			continue
		}
		claims = append(claims, model.Claim{
			Text:      claim,
			Heuristic: heuristic,
			Sentence:  i,
		})
	}
	return assignIDs(claims), nil
}

// splitSentences cuts on ./!/? followed by whitespace and a capital letter,
// which keeps abbreviations and decimals intact most of the time.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		// loc covers "<terminator><spaces><capital>"; cut after the terminator
		sentences = append(sentences, strings.TrimSpace(text[start:loc[0]+1]))
		start = loc[1] - 1
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// factualIndicator reports whether the sentence carries a checkable claim
// and which heuristic matched first.
func factualIndicator(sentence string) (string, bool) {
	lower := strings.ToLower(sentence)

	for _, skip := range skipPatterns {
		if skip.MatchString(lower) {
			return "", false
		}
	}
	for _, ind := range factualIndicators {
		subject := lower
		if ind.cased {
			subject = sentence
		}
		if ind.pattern.MatchString(subject) {
			return ind.name, true
		}
	}
	return "", false
}

// cleanClaim normalizes whitespace, strips markdown and ensures terminal
// punctuation.
func cleanClaim(sentence string) string {
	claim := whitespaceRun.ReplaceAllString(strings.TrimSpace(sentence), " ")
	claim = markdownBold.ReplaceAllString(claim, "$1")
	claim = markdownItalic.ReplaceAllString(claim, "$1")
	claim = markdownCode.ReplaceAllString(claim, "$1")

	if claim != "" && !strings.ContainsAny(claim[len(claim)-1:], ".!?") {
		claim += "."
	}
	return claim
}
