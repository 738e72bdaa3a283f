package main

import (
	"fmt"
	"os"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts model tokens in a chunk of text. The stream counter
// feeds it one line at a time, so counts can differ slightly from encoding
// a whole file at once when a token would have spanned a newline.
type Tokenizer interface {
	CountTokens(text string) int
}

const defaultTokenModel = "gpt-4o"

type tiktokenCounter struct {
	ttk *tiktoken.Tiktoken
}

func (t *tiktokenCounter) CountTokens(text string) int {
	if t.ttk == nil {
		return 0
	}
	return len(t.ttk.EncodeOrdinary(text))
}

// newTokenizer loads the tiktoken encoding for the requested model,
// falling back to the default model's encoding when the name is unknown.
func newTokenizer(model string) (Tokenizer, error) {
	if model == "" {
		model = defaultTokenModel
	}

	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: no token encoding for model %q, falling back to %s: %v\n", model, defaultTokenModel, err)
		enc, err = tiktoken.EncodingForModel(defaultTokenModel)
		if err != nil {
			return nil, fmt.Errorf("failed to load token encoding for %s: %w", defaultTokenModel, err)
		}
	}
	return &tiktokenCounter{ttk: enc}, nil
}
