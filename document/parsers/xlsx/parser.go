package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/EPH4-AI/ai-rag-chunkenizer/document"
)

// Parser is a parser which renders workbook sheets as markdown-style tables
type Parser struct {
	password string
}

var _ document.Parser = (*Parser)(nil)

type Option func(*Parser)

func WithPassword(passwd string) Option {
	return func(p *Parser) {
		p.password = passwd
	}
}

func NewParser(opts ...Option) *Parser {
	ret := new(Parser)
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Parse writes every non-empty sheet as a "[Sheet: name]" section followed
// by one piped row per spreadsheet row.
func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	opts := make([]excelize.Options, 0, 1)
	if p.password != "" {
		opts = append(opts, excelize.Options{Password: p.password})
	}
	doc, err := excelize.OpenReader(reader, opts...)
	if err != nil {
		return err
	}
	defer doc.Close()

	sheetsWritten := 0
	for _, sheet := range doc.GetSheetList() {
		rows, err := doc.Rows(sheet)
		if err != nil {
			return err
		}
		var totalRows int
		for rows.Next() {
			row, err := rows.Columns()
			if err != nil {
				rows.Close()
				return err
			}
			if len(row) == 0 {
				continue
			}
			if totalRows == 0 {
				if sheetsWritten > 0 {
					if _, err := writer.Write([]byte{'\n', '\n'}); err != nil {
						rows.Close()
						return err
					}
				}
				if _, err := fmt.Fprintf(writer, "[Sheet: %s]\n\n", sheet); err != nil {
					rows.Close()
					return err
				}
			}
			cells := make([]string, len(row))
			for i, cellValue := range row {
				cells[i] = strings.TrimSpace(document.EscapeMarkdown(document.StripUnprintable(cellValue)))
			}
			if _, err := fmt.Fprintf(writer, "| %s |\n", strings.Join(cells, " | ")); err != nil {
				rows.Close()
				return err
			}
			totalRows++
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if totalRows > 0 {
			sheetsWritten++
		}
	}
	return nil
}
