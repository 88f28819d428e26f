package pptx

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"regexp"
	"strconv"

	"github.com/EPH4-AI/ai-rag-chunkenizer/document"
)

var (
	re_SLIDE = regexp.MustCompile(`ppt/slides/slide(\d+)\.xml`)
	re_NOTES = regexp.MustCompile(`ppt/notesSlides/notesSlide(\d+)\.xml`)
)

// Parser is a parser which parse pptx content to text
type Parser struct{}

var _ document.Parser = (*Parser)(nil)

// Parse extracts slide text, slide tables and speaker notes. Each slide is
// emitted as a "[Slide N]" section, slides separated by "---" dividers.
func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	zipReader, err := zip.NewReader(reader, reader.Size())
	if err != nil {
		return err
	}
	deck := newDeck()
	deck.matchZipFile(zipReader)
	content, err := deck.extractTexts()
	if err != nil {
		return err
	}
	_, err = writer.Write([]byte(content))
	return err
}

// matchZipFile sorts the archive entries into slide and notes files keyed by
// slide number.
func (d *deck) matchZipFile(r *zip.Reader) {
	for _, file := range r.File {
		if matches := re_SLIDE.FindStringSubmatch(file.Name); len(matches) > 1 {
			if i, err := strconv.Atoi(matches[1]); err == nil {
				d.slideFiles[i] = file
			}
			continue
		}
		if matches := re_NOTES.FindStringSubmatch(file.Name); len(matches) > 1 {
			if i, err := strconv.Atoi(matches[1]); err == nil {
				d.notesFiles[i] = file
			}
		}
	}
}
