package chunker

import (
	"context"

	"github.com/EPH4-AI/ai-rag-chunkenizer/tokens"
)

// Extractor obtains document text for the file-path entry mode.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Option is a function type for configuring Chunkenizer instances.
// This follows the functional options pattern for clean and flexible configuration.
type Option func(*Chunkenizer)

// WithMaxTokens sets the soft token budget per chunk. Default is 1000.
func WithMaxTokens(n int) Option {
	return func(c *Chunkenizer) {
		c.cfg.MaxTokens = n
	}
}

// WithOverlapTokens sets the token overlap carried between adjacent chunks.
// Default is 100.
func WithOverlapTokens(n int) Option {
	return func(c *Chunkenizer) {
		c.cfg.OverlapTokens = n
	}
}

// WithModel selects the tokenization model. Default is "gpt-4".
func WithModel(model string) Option {
	return func(c *Chunkenizer) {
		c.cfg.Model = model
	}
}

// WithTokenCounter overrides the counter derived from the model identifier.
func WithTokenCounter(counter tokens.Counter) Option {
	return func(c *Chunkenizer) {
		c.counter = counter
	}
}

// WithExtractor overrides the default extraction registry.
func WithExtractor(ex Extractor) Option {
	return func(c *Chunkenizer) {
		c.extractor = ex
	}
}
