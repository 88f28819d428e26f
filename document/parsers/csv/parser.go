package csv

import (
	"bytes"
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/EPH4-AI/ai-rag-chunkenizer/document"
)

// Parser is a parser which renders CSV data as a markdown-style table with
// summary statistics for numeric columns.
type Parser struct{}

var _ document.Parser = (*Parser)(nil)

// Parse writes a "[CSV Data]" section with one piped row per record,
// followed by a "[Statistics]" section when numeric columns exist.
// Malformed records are skipped rather than failing the whole file.
func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	r := stdcsv.NewReader(reader)
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if _, ok := err.(*stdcsv.ParseError); ok {
				continue
			}
			return err
		}
		records = append(records, record)
	}
	if len(records) == 0 {
		return nil
	}

	if _, err := writer.Write([]byte("[CSV Data]\n\n")); err != nil {
		return err
	}
	for _, record := range records {
		cells := make([]string, len(record))
		for i, v := range record {
			cells[i] = strings.TrimSpace(document.EscapeMarkdown(document.StripUnprintable(v)))
		}
		if _, err := fmt.Fprintf(writer, "| %s |\n", strings.Join(cells, " | ")); err != nil {
			return err
		}
	}

	stats := columnStats(records)
	if len(stats) == 0 {
		return nil
	}
	if _, err := writer.Write([]byte("\n[Statistics]\n")); err != nil {
		return err
	}
	for _, s := range stats {
		if _, err := fmt.Fprintf(writer, "%s: count=%d mean=%g min=%g max=%g\n",
			s.name, s.count, s.mean, s.min, s.max); err != nil {
			return err
		}
	}
	return nil
}

type colStat struct {
	name  string
	count int
	mean  float64
	min   float64
	max   float64
}

// columnStats treats the first record as a header row and summarizes every
// column whose non-empty values are all numeric.
func columnStats(records [][]string) []colStat {
	if len(records) < 2 {
		return nil
	}
	header := records[0]
	var stats []colStat
	for col, name := range header {
		var (
			sum     float64
			min     float64
			max     float64
			count   int
			numeric = true
		)
		for _, record := range records[1:] {
			if col >= len(record) {
				continue
			}
			v := strings.TrimSpace(record[col])
			if v == "" {
				continue
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				numeric = false
				break
			}
			if count == 0 || f < min {
				min = f
			}
			if count == 0 || f > max {
				max = f
			}
			sum += f
			count++
		}
		if !numeric || count == 0 {
			continue
		}
		stats = append(stats, colStat{
			name:  strings.TrimSpace(name),
			count: count,
			mean:  sum / float64(count),
			min:   min,
			max:   max,
		})
	}
	return stats
}
