package tokens

import (
	"fmt"

	"github.com/clipperhouse/uax29/words"
	"github.com/pkoukk/tiktoken-go"
)

// ModelWords selects the heuristic word-based counter instead of a BPE
// encoding. Useful for offline estimation where the encoding tables are
// not available.
const ModelWords = "words"

// Counter defines the interface for counting tokens in a string.
// This abstraction allows for different tokenization strategies (e.g., words, subwords).
type Counter interface {
	// Count returns the number of tokens in the given text according to the
	// implementation's tokenization strategy.
	Count(text string) int
}

// WordCounter approximates token counts by Unicode word segmentation.
// It undercounts compared to subword tokenizers but needs no encoding table.
type WordCounter struct{}

// Count returns the number of word segments in the text.
func (wc WordCounter) Count(text string) int {
	return len(words.SegmentAll([]byte(text)))
}

// TikTokenCounter provides accurate token counting using the tiktoken library,
// which implements the tokenization schemes used by OpenAI models.
//
// The underlying encoding table is built once at construction and is
// read-only afterwards, so a single counter may be shared by concurrent
// chunking runs.
type TikTokenCounter struct {
	tke *tiktoken.Tiktoken
}

// NewTikTokenCounter creates a new TikTokenCounter for the given model
// identifier (e.g. "gpt-4", "gpt-3.5-turbo"). Encoding names such as
// "cl100k_base" are accepted as well.
func NewTikTokenCounter(model string) (*TikTokenCounter, error) {
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		if tke, err = tiktoken.GetEncoding(model); err != nil {
			return nil, fmt.Errorf("failed to get encoding for %q: %w", model, err)
		}
	}
	return &TikTokenCounter{tke: tke}, nil
}

// Count returns the exact number of tokens in the text according to the
// model's encoding.
func (ttc *TikTokenCounter) Count(text string) int {
	return len(ttc.tke.Encode(text, nil, nil))
}

// ForModel resolves a model identifier to a Counter. An unrecognized
// identifier is a configuration error.
func ForModel(model string) (Counter, error) {
	if model == ModelWords {
		return WordCounter{}, nil
	}
	return NewTikTokenCounter(model)
}
