package spelling

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFuzzyCorrector(t *testing.T) {
	dictionary := strings.Fields(strings.Repeat("what color colour battery display is the ", 3))
	corrector := NewFuzzyCorrector(dictionary, DefaultOptions())

	tests := []struct {
		name     string
		word     string
		expected string
	}{
		{name: "Known word", word: "color", expected: "color"},
		{name: "One edit away", word: "batery", expected: "battery"},
		{name: "Two edits away", word: "dsplay", expected: "display"},
		{name: "No suggestion keeps the word", word: "zzzzzzzzzz", expected: "zzzzzzzzzz"},
		{name: "Digits are left alone", word: "128gb", expected: "128gb"},
		{name: "Empty", word: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, corrector.Correct(tt.word))
		})
	}
}

func TestDefaultOptionsIndexWordsSeenOnce(t *testing.T) {
	corrector := NewFuzzyCorrector([]string{"warranty", "battery"}, DefaultOptions())

	assert.Equal(t, "warranty", corrector.Correct("waranty"))
	assert.Equal(t, "battery", corrector.Correct("batery"))
}

func TestPassthrough(t *testing.T) {
	assert.Equal(t, "batery", Passthrough{}.Correct("batery"))
}

func TestReadWords(t *testing.T) {
	words, err := ReadWords(strings.NewReader("The battery, lasts\n5000 hours; it's GREAT\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "battery", "lasts", "hours", "it's", "great"}, words)
}

func TestLoad(t *testing.T) {
	t.Run("No dictionary", func(t *testing.T) {
		corrector, err := Load("", DefaultOptions(), discardLogger())
		require.NoError(t, err)
		assert.IsType(t, Passthrough{}, corrector)
	})

	t.Run("Dictionary file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "words.txt")
		require.NoError(t, os.WriteFile(path, []byte("warranty\ncolor\n"), 0o644))

		corrector, err := Load(path, DefaultOptions(), discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "warranty", corrector.Correct("waranty"))
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.txt"), DefaultOptions(), discardLogger())
		assert.Error(t, err)
	})
}
