package docx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/EPH4-AI/ai-rag-chunkenizer/document"
)

// Parser is a parser which parse docx content to text
type Parser struct{}

var _ document.Parser = (*Parser)(nil)

// Parse extracts paragraph and table text from a Word document. Tables are
// rendered with a "[Table N]" marker so their rows stay identifiable after
// chunking.
func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	doc, err := docx.Parse(reader, reader.Size())
	if err != nil {
		return err
	}

	var (
		written  int
		tableIdx int
	)
	for _, it := range doc.Document.Body.Items {
		var content string
		switch t := it.(type) {
		case *docx.Paragraph:
			content = t.String()
		case *docx.Table:
			tableIdx++
			content = fmt.Sprintf("[Table %d]\n%s", tableIdx, t.String())
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		if written > 0 {
			if _, err := writer.Write([]byte{'\n', '\n'}); err != nil {
				return err
			}
		}
		if _, err := writer.Write([]byte(content)); err != nil {
			return err
		}
		written++
	}
	return nil
}
