package qa

import (
	"strings"

	"github.com/maltedev/product-qa/internal/tokenizer"
)

// Span is an inclusive token range. End may precede Start; such a span
// decodes to an empty answer.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start + 1
}

// Argmax returns the index of the largest score, the first one on ties, or
// -1 for an empty slice.
func Argmax(scores []float64) int {
	best := -1
	for i, score := range scores {
		if best < 0 || score > scores[best] {
			best = i
		}
	}
	return best
}

// SelectSpan picks start and end independently. Neither ordering nor the
// context segment is enforced.
func SelectSpan(start, end []float64) Span {
	return Span{Start: Argmax(start), End: Argmax(end)}
}

// Decoder turns token ids back into text.
type Decoder interface {
	ConvertIDsToTokens(ids []int, skipSpecial bool) []string
	ConvertTokensToString(tokens []string) string
}

// DecodeSpan renders ids[start:end+1] with special tokens dropped. An end past
// the sequence is clamped to the last token. onlySpecial reports a non-empty
// span that held nothing but special tokens.
func DecodeSpan(d Decoder, ids []int, span Span) (answer string, onlySpecial bool) {
	if span.End >= len(ids) {
		span.End = len(ids) - 1
	}
	if span.Len() == 0 || span.Start < 0 || span.Start >= len(ids) {
		return "", false
	}

	selected := ids[span.Start : span.End+1]
	tokens := d.ConvertIDsToTokens(selected, true)
	if len(tokens) == 0 {
		return "", true
	}
	return d.ConvertTokensToString(tokens), false
}

// ClassifyAnswer reports whether an answer carries a classification or
// separator placeholder, meaning the model did not find a real span.
func ClassifyAnswer(answer string) (lowConfidence bool) {
	return strings.Contains(answer, tokenizer.ClsToken) || strings.Contains(answer, tokenizer.SepToken)
}
