package tokenizer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	PadToken  = "[PAD]"
	UnkToken  = "[UNK]"
	ClsToken  = "[CLS]"
	SepToken  = "[SEP]"
	MaskToken = "[MASK]"
)

var ErrMissingToken = errors.New("vocabulary is missing a required token")

// Vocab maps WordPiece tokens to ids. The id of a token is its line number in
// vocab.txt, starting at zero.
type Vocab struct {
	tokenToID map[string]int
	idToToken []string
}

func LoadVocab(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary: %w", err)
	}
	defer f.Close()

	vocab, err := ReadVocab(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary %s: %w", path, err)
	}
	return vocab, nil
}

func ReadVocab(r io.Reader) (*Vocab, error) {
	var tokens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		tokens = append(tokens, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return NewVocab(tokens)
}

func NewVocab(tokens []string) (*Vocab, error) {
	v := &Vocab{
		tokenToID: make(map[string]int, len(tokens)),
		idToToken: make([]string, len(tokens)),
	}
	for id, token := range tokens {
		v.idToToken[id] = token
		if _, dup := v.tokenToID[token]; !dup {
			v.tokenToID[token] = id
		}
	}

	for _, required := range []string{PadToken, UnkToken, ClsToken, SepToken} {
		if _, ok := v.tokenToID[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingToken, required)
		}
	}
	return v, nil
}

func (v *Vocab) ID(token string) (int, bool) {
	id, ok := v.tokenToID[token]
	return id, ok
}

func (v *Vocab) Token(id int) (string, bool) {
	if id < 0 || id >= len(v.idToToken) {
		return "", false
	}
	return v.idToToken[id], true
}

func (v *Vocab) Size() int {
	return len(v.idToToken)
}
