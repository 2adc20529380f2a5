// Package llm turns a window of cleaned document text into a short summary
// using a hosted language model.
package llm

import (
	"context"
	"errors"
)

// DefaultMaxTokens bounds the length of each chunk summary.
const DefaultMaxTokens = 100

// SystemPrompt is sent with every chunk.
const SystemPrompt = "You summarize fragments of documents. The fragment has been lowercased " +
	"and stripped of stopwords and punctuation. Reply with a concise plain-text summary " +
	"of its content in one or two sentences. Do not add commentary."

var (
	// ErrEmptyText is returned when text is empty
	ErrEmptyText = errors.New("text cannot be empty")
	// ErrEmptyResponse is returned when the model produced no text
	ErrEmptyResponse = errors.New("model returned an empty summary")
	// ErrNoAPIKey is returned when a provider is selected without credentials
	ErrNoAPIKey = errors.New("api key not set")
)

// Generator produces a summary of a single chunk of text.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}
