package tokenizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTokens = []string{
	PadToken, UnkToken, ClsToken, SepToken, MaskToken,
	"what", "color", "is", "it", "?", ".", ",", "$",
	"widget", "x", "product", "price", "after", "discount", "actual",
	"10", "20", "dura", "##ble", "red", "cafe", "un", "##believ", "##able",
	"中",
}

func newTestTokenizer(t *testing.T, maxLen int) *WordPiece {
	t.Helper()
	vocab, err := NewVocab(testTokens)
	require.NoError(t, err)
	w, err := NewWordPiece(vocab, maxLen)
	require.NoError(t, err)
	return w
}

func TestReadVocab(t *testing.T) {
	vocab, err := ReadVocab(strings.NewReader("[PAD]\n[UNK]\r\n[CLS]\n[SEP]\nhello\n"))
	require.NoError(t, err)

	assert.Equal(t, 5, vocab.Size())
	id, ok := vocab.ID("hello")
	assert.True(t, ok)
	assert.Equal(t, 4, id)

	token, ok := vocab.Token(1)
	assert.True(t, ok)
	assert.Equal(t, UnkToken, token)

	_, ok = vocab.Token(99)
	assert.False(t, ok)
}

func TestNewVocabRequiresSpecialTokens(t *testing.T) {
	_, err := NewVocab([]string{PadToken, UnkToken, "hello"})
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(testTokens, "\n")), 0o644))

	w, err := Load(path, 16)
	require.NoError(t, err)
	assert.Equal(t, []string{"red"}, w.Tokenize("Red"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"), 16)
	assert.Error(t, err)
}

func TestTokenize(t *testing.T) {
	w := newTestTokenizer(t, 64)

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "Lowercases and splits punctuation",
			text:     "What color is it?",
			expected: []string{"what", "color", "is", "it", "?"},
		},
		{
			name:     "Continuation pieces",
			text:     "Durable, unbelievable",
			expected: []string{"dura", "##ble", ",", "un", "##believ", "##able"},
		},
		{
			name:     "Strips accents",
			text:     "Café",
			expected: []string{"cafe"},
		},
		{
			name:     "Unknown word",
			text:     "gizmo red",
			expected: []string{UnkToken, "red"},
		},
		{
			name:     "Isolates CJK ideographs",
			text:     "red中",
			expected: []string{"red", "中"},
		},
		{
			name:     "Drops control characters",
			text:     "red\u0000\u200b",
			expected: []string{"red"},
		},
		{
			name:     "Currency symbols split",
			text:     "$10.",
			expected: []string{"$", "10", "."},
		},
		{
			name:     "Overlong word",
			text:     strings.Repeat("a", maxWordChars+1),
			expected: []string{UnkToken},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.Tokenize(tt.text))
		})
	}
}

func TestEncodePair(t *testing.T) {
	w := newTestTokenizer(t, 64)

	enc := w.EncodePair("what color ?", "Widget X. Red")

	assert.Equal(t, []string{
		ClsToken, "what", "color", "?", SepToken,
		"widget", "x", ".", "red", SepToken,
	}, enc.Tokens)
	assert.Equal(t, []int{2, 5, 6, 9, 3, 13, 14, 10, 24, 3}, enc.InputIDs)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, enc.AttentionMask)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}, enc.TokenTypeIDs)
	assert.Zero(t, enc.Truncated)
}

func TestEncodePairTruncatesLongerSide(t *testing.T) {
	w := newTestTokenizer(t, 8)

	enc := w.EncodePair("what color", "widget x product price red")

	assert.Len(t, enc.InputIDs, 8)
	assert.Equal(t, 8, w.MaxSequenceLength())
	assert.Equal(t, []string{
		ClsToken, "what", "color", SepToken,
		"widget", "x", "product", SepToken,
	}, enc.Tokens)
	assert.Equal(t, 2, enc.Truncated)
}

func TestNewWordPieceRejectsTinyLimit(t *testing.T) {
	vocab, err := NewVocab(testTokens)
	require.NoError(t, err)

	_, err = NewWordPiece(vocab, 4)
	assert.ErrorIs(t, err, ErrSequenceTooShort)
}

func TestConvertIDsToTokens(t *testing.T) {
	w := newTestTokenizer(t, 64)
	ids := []int{2, 22, 23, 3, 999}

	assert.Equal(t, []string{ClsToken, "dura", "##ble", SepToken, UnkToken}, w.ConvertIDsToTokens(ids, false))
	assert.Equal(t, []string{"dura", "##ble"}, w.ConvertIDsToTokens(ids[:4], true))
}

func TestConvertTokensToString(t *testing.T) {
	w := newTestTokenizer(t, 64)

	tests := []struct {
		name     string
		tokens   []string
		expected string
	}{
		{name: "Joins continuation pieces", tokens: []string{"dura", "##ble", "red"}, expected: "durable red"},
		{name: "Single token", tokens: []string{"red"}, expected: "red"},
		{name: "Empty", tokens: nil, expected: ""},
		{name: "Special token kept", tokens: []string{ClsToken}, expected: ClsToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.ConvertTokensToString(tt.tokens))
		})
	}
}

func TestIsSpecialToken(t *testing.T) {
	w := newTestTokenizer(t, 64)
	assert.True(t, w.IsSpecialToken(SepToken))
	assert.True(t, w.IsSpecialToken(ClsToken))
	assert.False(t, w.IsSpecialToken("red"))
}
