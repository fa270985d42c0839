package spelling

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode"

	"github.com/sajari/fuzzy"
)

// Corrector maps a single lowercase word to its most likely spelling.
type Corrector interface {
	Correct(word string) string
}

// Passthrough returns every word unchanged.
type Passthrough struct{}

func (Passthrough) Correct(word string) string {
	return word
}

// FuzzyCorrector wraps a trained symmetric-delete model.
type FuzzyCorrector struct {
	model *fuzzy.Model
}

type Options struct {
	Depth int
	// Threshold is the corpus count at which a word starts being suggested.
	// Zero never indexes anything.
	Threshold int
}

func DefaultOptions() Options {
	return Options{Depth: 2, Threshold: 1}
}

func NewFuzzyCorrector(words []string, opts Options) *FuzzyCorrector {
	model := fuzzy.NewModel()
	model.SetThreshold(opts.Threshold)
	model.SetDepth(opts.Depth)
	model.Train(words)
	return &FuzzyCorrector{model: model}
}

// Correct leaves numeric tokens and words without a suggestion untouched.
func (c *FuzzyCorrector) Correct(word string) string {
	if word == "" || containsDigit(word) {
		return word
	}
	if suggestion := c.model.SpellCheck(word); suggestion != "" {
		return suggestion
	}
	return word
}

// ReadWords tokenizes a word list or free text corpus into lowercase words.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		for _, field := range strings.FieldsFunc(scanner.Text(), isSeparator) {
			words = append(words, strings.ToLower(field))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Load builds a corrector from a dictionary file. An empty path yields the
// passthrough corrector.
func Load(path string, opts Options, logger *slog.Logger) (Corrector, error) {
	if path == "" {
		logger.Warn("no spelling dictionary configured, questions will not be corrected")
		return Passthrough{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spelling dictionary: %w", err)
	}
	defer f.Close()

	words, err := ReadWords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read spelling dictionary %s: %w", path, err)
	}

	logger.Info("spelling model trained", "path", path, "words", len(words))
	return NewFuzzyCorrector(words, opts), nil
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && r != '\''
}

func containsDigit(word string) bool {
	return strings.IndexFunc(word, unicode.IsDigit) >= 0
}
