package service

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Segmenter splits text into sentences with a pretrained punkt model.
type Segmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewSegmenter loads the English punkt model. Loading is slow, so callers
// should build one Segmenter and share it.
func NewSegmenter() (*Segmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence model: %w", err)
	}
	return &Segmenter{tokenizer: tokenizer}, nil
}

// SplitSentences returns the sentences of text in order.
func (s *Segmenter) SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	tokens := s.tokenizer.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, sent := range tokens {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}
