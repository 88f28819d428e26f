package chunker

import (
	"bytes"
	"strconv"

	"github.com/google/uuid"
)

// Chunk is one bounded span of words emitted by the window builder.
type Chunk struct {
	// Index is the zero-based position of the chunk within its run
	Index int `json:"index"`
	// Text contains the space-joined words of the chunk, never empty
	Text string `json:"text"`
	// TokenCount is the exact token count of Text under the run's model
	TokenCount int `json:"token_count"`
	// CharCount is the length of Text in characters
	CharCount int `json:"char_count"`
}

// UUID returns a stable identifier for the chunk, derived from the source
// label, the index and the content. Suitable as a vector store key.
func (c Chunk) UUID(source string) string {
	sb := new(bytes.Buffer)
	sb.WriteString(source)
	sb.WriteByte('#')
	sb.WriteString(strconv.Itoa(c.Index))
	sb.WriteByte('\n')
	sb.WriteString(c.Text)
	return uuid.NewSHA1(uuid.NameSpaceOID, sb.Bytes()).String()
}

// Config is the {max_tokens, overlap_tokens, model} triple in effect for a
// chunking run. It is snapshotted into every result and never changes once
// a run starts.
type Config struct {
	MaxTokens     int    `json:"max_tokens" yaml:"max_tokens" validate:"gt=0"`
	OverlapTokens int    `json:"overlap_tokens" yaml:"overlap_tokens" validate:"gte=0"`
	Model         string `json:"model" yaml:"model" validate:"required"`
}

// ChunkResult is the output of one chunking run.
type ChunkResult struct {
	Source      string  `json:"source"`
	TotalChunks int     `json:"total_chunks"`
	TotalTokens int     `json:"total_tokens"`
	TotalChars  int     `json:"total_chars"`
	Config      Config  `json:"config"`
	Chunks      []Chunk `json:"chunks"`
}

// Texts returns just the text content of each chunk, in order.
func (r *ChunkResult) Texts() []string {
	texts := make([]string, len(r.Chunks))
	for i, c := range r.Chunks {
		texts[i] = c.Text
	}
	return texts
}
