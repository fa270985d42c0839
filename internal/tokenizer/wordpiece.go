package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	continuationPrefix = "##"
	maxWordChars       = 100
	// [CLS] question [SEP] context [SEP]
	pairOverhead = 3
)

var ErrSequenceTooShort = errors.New("maximum sequence length leaves no room for the pair")

// Encoding is a question/context pair ready for the span model.
type Encoding struct {
	InputIDs      []int
	AttentionMask []int
	TokenTypeIDs  []int
	Tokens        []string
	// Truncated counts the word pieces dropped to fit the sequence limit.
	Truncated int
}

// WordPiece is an uncased BERT tokenizer. It is safe for concurrent use once
// built.
type WordPiece struct {
	vocab        *Vocab
	maxLen       int
	unkID        int
	clsID        int
	sepID        int
	padID        int
	specialIDs   map[int]bool
	specialNames map[string]bool
}

func NewWordPiece(vocab *Vocab, maxLen int) (*WordPiece, error) {
	if maxLen < pairOverhead+2 {
		return nil, fmt.Errorf("%w: %d", ErrSequenceTooShort, maxLen)
	}

	w := &WordPiece{
		vocab:        vocab,
		maxLen:       maxLen,
		specialIDs:   make(map[int]bool),
		specialNames: make(map[string]bool),
	}
	w.unkID, _ = vocab.ID(UnkToken)
	w.clsID, _ = vocab.ID(ClsToken)
	w.sepID, _ = vocab.ID(SepToken)
	w.padID, _ = vocab.ID(PadToken)

	for _, name := range []string{PadToken, UnkToken, ClsToken, SepToken, MaskToken} {
		if id, ok := vocab.ID(name); ok {
			w.specialIDs[id] = true
			w.specialNames[name] = true
		}
	}
	return w, nil
}

// Load reads vocab.txt and builds the tokenizer in one step.
func Load(vocabPath string, maxLen int) (*WordPiece, error) {
	vocab, err := LoadVocab(vocabPath)
	if err != nil {
		return nil, err
	}
	return NewWordPiece(vocab, maxLen)
}

// Tokenize splits text into word pieces.
func (w *WordPiece) Tokenize(text string) []string {
	var pieces []string
	for _, word := range basicTokenize(text) {
		pieces = append(pieces, w.wordPieces(word)...)
	}
	return pieces
}

// wordPieces applies greedy longest-match-first over the vocabulary. A word
// with any unmatched remainder becomes a single [UNK].
func (w *WordPiece) wordPieces(word string) []string {
	if utf8.RuneCountInString(word) > maxWordChars {
		return []string{UnkToken}
	}

	chars := []rune(word)
	var pieces []string
	for start := 0; start < len(chars); {
		end := len(chars)
		matched := ""
		for start < end {
			candidate := string(chars[start:end])
			if start > 0 {
				candidate = continuationPrefix + candidate
			}
			if _, ok := w.vocab.ID(candidate); ok {
				matched = candidate
				break
			}
			end--
		}
		if matched == "" {
			return []string{UnkToken}
		}
		pieces = append(pieces, matched)
		start = end
	}
	return pieces
}

func (w *WordPiece) ConvertTokensToIDs(tokens []string) []int {
	ids := make([]int, len(tokens))
	for i, token := range tokens {
		id, ok := w.vocab.ID(token)
		if !ok {
			id = w.unkID
		}
		ids[i] = id
	}
	return ids
}

// EncodePair lays out [CLS] question [SEP] context [SEP]. When the pair is
// longer than the limit, pieces are dropped from the end of whichever side is
// longer, the context on ties.
func (w *WordPiece) EncodePair(question, context string) *Encoding {
	q := w.Tokenize(question)
	c := w.Tokenize(context)

	truncated := 0
	for len(q)+len(c)+pairOverhead > w.maxLen {
		if len(q) > len(c) {
			q = q[:len(q)-1]
		} else {
			c = c[:len(c)-1]
		}
		truncated++
	}

	tokens := make([]string, 0, len(q)+len(c)+pairOverhead)
	tokens = append(tokens, ClsToken)
	tokens = append(tokens, q...)
	tokens = append(tokens, SepToken)
	questionEnd := len(tokens)
	tokens = append(tokens, c...)
	tokens = append(tokens, SepToken)

	enc := &Encoding{
		InputIDs:      w.ConvertTokensToIDs(tokens),
		AttentionMask: make([]int, len(tokens)),
		TokenTypeIDs:  make([]int, len(tokens)),
		Tokens:        tokens,
		Truncated:     truncated,
	}
	for i := range tokens {
		enc.AttentionMask[i] = 1
		if i >= questionEnd {
			enc.TokenTypeIDs[i] = 1
		}
	}
	return enc
}

// ConvertIDsToTokens maps ids back to tokens. Unknown ids map to [UNK].
func (w *WordPiece) ConvertIDsToTokens(ids []int, skipSpecial bool) []string {
	tokens := make([]string, 0, len(ids))
	for _, id := range ids {
		if skipSpecial && w.specialIDs[id] {
			continue
		}
		token, ok := w.vocab.Token(id)
		if !ok {
			token = UnkToken
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// ConvertTokensToString joins tokens with spaces and glues continuation
// pieces back onto the preceding token.
func (w *WordPiece) ConvertTokensToString(tokens []string) string {
	joined := strings.Join(tokens, " ")
	return strings.TrimSpace(strings.ReplaceAll(joined, " "+continuationPrefix, ""))
}

func (w *WordPiece) IsSpecialToken(token string) bool {
	return w.specialNames[token]
}

func (w *WordPiece) MaxSequenceLength() int {
	return w.maxLen
}
