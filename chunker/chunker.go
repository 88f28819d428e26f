package chunker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/EPH4-AI/ai-rag-chunkenizer/extractor"
	"github.com/EPH4-AI/ai-rag-chunkenizer/tokens"
)

// ErrInvalidConfig reports a configuration rejected at construction time.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

// DefaultSource labels results of the raw-text entry mode when the caller
// supplies no name.
const DefaultSource = "text"

// Chunkenizer splits document text into token-budgeted, overlapping chunks
// for embedding pipelines. It accumulates whitespace-delimited words until
// the budget is reached, then commits the window and carries a word-granular
// overlap into the next one. Words are never split, so a single oversized
// word may exceed the budget on its own.
//
// A Chunkenizer holds no per-run state and may be shared by concurrent runs.
type Chunkenizer struct {
	cfg       Config
	counter   tokens.Counter
	extractor Extractor
}

// New creates a Chunkenizer. Defaults: max tokens 1000, overlap 100,
// model "gpt-4". An unrecognized model or a non-positive budget is rejected
// here, never during a run.
func New(opts ...Option) (*Chunkenizer, error) {
	c := &Chunkenizer{
		cfg: Config{
			MaxTokens:     1000,
			OverlapTokens: 100,
			Model:         "gpt-4",
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := validate.Struct(c.cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.counter == nil {
		counter, err := tokens.ForModel(c.cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		c.counter = counter
	}
	if c.extractor == nil {
		c.extractor = extractor.NewRegistry()
	}
	return c, nil
}

// Config returns the configuration snapshot of the chunker.
func (c *Chunkenizer) Config() Config {
	return c.cfg
}

// CountTokens counts tokens in a text string under the configured model.
func (c *Chunkenizer) CountTokens(text string) int {
	return c.counter.Count(text)
}

// ChunkText splits text into token-aware chunks with overlap.
//
// Each word's insertion cost is counted together with its trailing join
// space, so the running estimate anticipates the cost of the final joined
// text without re-tokenizing the window at every step. Emitted chunks carry
// the exact recount of their joined text, not the estimate.
func (c *Chunkenizer) ChunkText(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	words := strings.Fields(text)
	var (
		chunks        []Chunk
		currentWords  []string
		currentTokens int
	)

	for _, word := range words {
		wordTokens := c.counter.Count(word + " ")

		if currentTokens+wordTokens > c.cfg.MaxTokens && len(currentWords) > 0 {
			chunks = append(chunks, c.buildChunk(len(chunks), currentWords))
			currentWords, currentTokens = c.overlapCarry(currentWords)
		}

		currentWords = append(currentWords, word)
		currentTokens += wordTokens
	}

	if len(currentWords) > 0 {
		chunks = append(chunks, c.buildChunk(len(chunks), currentWords))
	}

	return chunks
}

// Process extracts text from a document file and chunks it. The source
// label of the result is the base file name.
func (c *Chunkenizer) Process(ctx context.Context, path string) (*ChunkResult, error) {
	text, err := c.extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	return c.assemble(filepath.Base(path), c.ChunkText(text)), nil
}

// ProcessText chunks raw text directly under the given source label.
func (c *Chunkenizer) ProcessText(text, source string) *ChunkResult {
	if source == "" {
		source = DefaultSource
	}
	return c.assemble(source, c.ChunkText(text))
}

func (c *Chunkenizer) buildChunk(index int, words []string) Chunk {
	text := strings.Join(words, " ")
	return Chunk{
		Index:      index,
		Text:       text,
		TokenCount: c.counter.Count(text),
		CharCount:  utf8.RuneCountInString(text),
	}
}

// overlapCarry returns the words retained from a just-committed window and
// their token cost. The word count is derived from the token overlap at
// ~4 characters per token; a zero overlap carries nothing so consecutive
// chunks never share a word.
func (c *Chunkenizer) overlapCarry(words []string) ([]string, int) {
	if c.cfg.OverlapTokens == 0 {
		return nil, 0
	}
	keep := max(1, c.cfg.OverlapTokens/4)
	if keep > len(words) {
		keep = len(words)
	}
	carried := make([]string, keep)
	copy(carried, words[len(words)-keep:])
	cost := 0
	for _, w := range carried {
		cost += c.counter.Count(w + " ")
	}
	return carried, cost
}

// assemble wraps a chunk sequence with its aggregate totals and the
// configuration snapshot. Totals are always computed by summation.
func (c *Chunkenizer) assemble(source string, chunks []Chunk) *ChunkResult {
	if chunks == nil {
		chunks = []Chunk{}
	}
	res := &ChunkResult{
		Source:      source,
		TotalChunks: len(chunks),
		Config:      c.cfg,
		Chunks:      chunks,
	}
	for _, ch := range chunks {
		res.TotalTokens += ch.TokenCount
		res.TotalChars += ch.CharCount
	}
	return res
}
