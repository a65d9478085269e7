// Package tokenizer counts LLM tokens using tiktoken encodings.
package tokenizer

import (
	"errors"
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// ErrNoEncoding is returned when no tiktoken encoding can be loaded. Token
// accounting is the purpose of the tool, so this is fatal configuration:
// unlike the encoder there is no degraded mode.
var ErrNoEncoding = errors.New("tokenizer: no tiktoken encoding available")

// Tokenizer counts tokens with a tiktoken encoding.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New loads the cl100k_base encoding (GPT-4 family, a good approximation
// across providers), falling back to gpt2 if unavailable.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		enc, err = tiktoken.GetEncoding("gpt2")
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoEncoding, err)
		}
	}
	return &Tokenizer{enc: enc}, nil
}

// Count returns the number of tokens in text.
func (t *Tokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}
