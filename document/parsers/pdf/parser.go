package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/EPH4-AI/ai-rag-chunkenizer/document"
)

// Parser is a parser which parse PDF content to text
type Parser struct {
	password string
}

var _ document.Parser = (*Parser)(nil)

type Option func(*Parser)

func WithPassword(password string) Option {
	return func(p *Parser) {
		p.password = password
	}
}

func NewParser(opts ...Option) *Parser {
	ret := new(Parser)
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Parse extracts the text of every page, each prefixed with a "[Page N]"
// marker, pages separated by blank lines.
func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	var (
		r    *pdf.Reader
		err  error
		size = reader.Size()
	)
	if p.password != "" {
		if r, err = pdf.NewReaderEncrypted(reader, size, func() string {
			return p.password
		}); err != nil {
			return err
		}
	} else {
		if r, err = pdf.NewReader(reader, size); err != nil {
			return err
		}
	}
	totalPage := r.NumPage()

	pages := 0
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text := new(strings.Builder)
		rows, _ := page.GetTextByRow()
		for idx, row := range rows {
			if idx > 0 {
				text.WriteByte('\n')
			}
			for _, word := range row.Content {
				text.WriteString(word.S)
			}
		}
		if strings.TrimSpace(text.String()) == "" {
			continue
		}
		if pages > 0 {
			if _, err := writer.Write([]byte("\n\n")); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(writer, "[Page %d]\n%s", pageIndex, text.String()); err != nil {
			return err
		}
		pages++
	}
	return nil
}
