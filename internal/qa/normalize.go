package qa

import (
	"regexp"
	"strings"

	"github.com/maltedev/product-qa/internal/spelling"
)

const questionSuffix = " ?"

var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// questionWords strips punctuation, lowercases and splits the raw question.
func questionWords(raw string) []string {
	return strings.Fields(strings.ToLower(nonWordPattern.ReplaceAllString(raw, "")))
}

// IsEmptyQuestion reports whether nothing but punctuation and whitespace was
// entered, the "no question yet" state.
func IsEmptyQuestion(raw string) bool {
	return len(questionWords(raw)) == 0
}

// NormalizeQuestion prepares user input for the span model: punctuation
// stripped, lowercased, each word spell-corrected, joined with single spaces
// and terminated with " ?".
func NormalizeQuestion(raw string, corrector spelling.Corrector) string {
	words := questionWords(raw)
	for i, word := range words {
		words[i] = corrector.Correct(word)
	}
	return strings.Join(words, " ") + questionSuffix
}
