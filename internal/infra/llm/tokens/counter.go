package tokens

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

// Counter measures prompt sizes with the tokenizer of the configured model.
type Counter struct {
	encoding *tiktoken.Tiktoken
}

// NewCounter resolves the tokenizer for model, falling back to cl100k_base
// for models tiktoken does not know yet.
func NewCounter(model string) (*Counter, error) {
	enc, err := tiktoken.EncodingForModel(strings.TrimSpace(model))
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, fmt.Errorf("load tokenizer: %w", err)
		}
	}
	return &Counter{encoding: enc}, nil
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.encoding.Encode(text, nil, nil))
}
