package pptx

import (
	"archive/zip"
	"fmt"
	"sort"
	"strings"

	qxml "github.com/dgrr/quickxml"
)

// deck holds the slide and notes entries of one presentation archive.
type deck struct {
	slideFiles map[int]*zip.File
	notesFiles map[int]*zip.File

	slideSep     string
	paragraphSep string
	phraseSep    string
	tableRowSep  string
	tableColSep  string
}

func newDeck() *deck {
	return &deck{
		slideFiles:   make(map[int]*zip.File),
		notesFiles:   make(map[int]*zip.File),
		slideSep:     "\n\n---\n\n",
		paragraphSep: "\n",
		phraseSep:    " ",
		tableRowSep:  "\n",
		tableColSep:  " | ",
	}
}

// extractTexts renders every slide in order, appending its speaker notes
// when present.
func (d *deck) extractTexts() (string, error) {
	indices := make([]int, 0, len(d.slideFiles))
	for i := range d.slideFiles {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	slides := make([]string, 0, len(indices))
	for _, i := range indices {
		body, err := d.extractFile(d.slideFiles[i])
		if err != nil {
			return "", err
		}
		slide := new(strings.Builder)
		fmt.Fprintf(slide, "[Slide %d]", i)
		if body != "" {
			slide.WriteByte('\n')
			slide.WriteString(body)
		}
		if notesFile, ok := d.notesFiles[i]; ok {
			notes, err := d.extractFile(notesFile)
			if err != nil {
				return "", err
			}
			if notes != "" {
				slide.WriteString("\n\n[Notes]\n")
				slide.WriteString(notes)
			}
		}
		slides = append(slides, slide.String())
	}

	return strings.Join(slides, d.slideSep), nil
}

// extractFile walks one slide (or notes) XML part and collects its phrase
// and table text.
func (d *deck) extractFile(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	var (
		texts  = new(strings.Builder)
		phrase = ""
	)
	r := qxml.NewReader(rc)

NEXT:
	for r.Next() {
		switch e := r.Element().(type) {
		case *qxml.EndElement:
			if e.Name() == "a:p" {
				texts.WriteString(d.paragraphSep)
			}

		case *qxml.StartElement:
			switch e.Name() {
			case "a:t":
				r.AssignNext(&phrase)
				if !r.Next() {
					break NEXT
				}
				if len(phrase) > 0 {
					texts.WriteString(phrase)
					texts.WriteString(d.phraseSep)
					phrase = ""
				}

			case "a:tbl":
				table := d.extractTable(r)
				if table.Len() > 0 {
					texts.WriteString("[Table]\n")
					texts.WriteString(table.String())
				}
			}
		}
	}
	return strings.TrimSpace(texts.String()), nil
}

// extractTable consumes elements until the enclosing a:tbl ends, joining
// cell text per row.
func (d *deck) extractTable(r *qxml.Reader) *strings.Builder {
	var (
		texts = new(strings.Builder)
		cells []string
		a_t   = ""
	)

NEXT:
	for r.Next() {
		switch e := r.Element().(type) {
		case *qxml.StartElement:
			if e.Name() == "a:t" {
				r.AssignNext(&a_t)
				if !r.Next() {
					break NEXT
				}
				cells = append(cells, a_t)
				a_t = ""
			}

		case *qxml.EndElement:
			switch e.Name() {
			case "a:tr":
				if len(cells) > 0 {
					texts.WriteString(strings.Join(cells, d.tableColSep))
					texts.WriteString(d.tableRowSep)
					cells = cells[:0]
				}
			case "a:tbl":
				break NEXT
			}
		}
	}

	return texts
}
