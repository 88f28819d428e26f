package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/EPH4-AI/ai-rag-chunkenizer/document"
	"github.com/EPH4-AI/ai-rag-chunkenizer/document/parsers/csv"
	"github.com/EPH4-AI/ai-rag-chunkenizer/document/parsers/docx"
	"github.com/EPH4-AI/ai-rag-chunkenizer/document/parsers/pdf"
	"github.com/EPH4-AI/ai-rag-chunkenizer/document/parsers/pptx"
	"github.com/EPH4-AI/ai-rag-chunkenizer/document/parsers/xlsx"
)

// ErrUnsupportedFormat reports a file extension with no registered parser.
// It is surfaced before the file is opened.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ExtractionError wraps a parser failure with the file it occurred on.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Registry maps file extensions to format parsers. The mapping is resolved
// once at construction and never mutated afterwards, so a Registry may be
// shared by concurrent callers.
type Registry struct {
	parsers map[string]document.Parser
}

type Option func(*Registry)

// WithParser registers or overrides the parser for an extension.
func WithParser(ext string, p document.Parser) Option {
	return func(r *Registry) {
		r.parsers[strings.ToLower(ext)] = p
	}
}

// NewRegistry builds a registry with the default parser set:
// PDF, Word, Excel (including legacy .xls), CSV and PowerPoint.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		parsers: map[string]document.Parser{
			".pdf":  pdf.NewParser(),
			".docx": new(docx.Parser),
			".xlsx": xlsx.NewParser(),
			".xls":  xlsx.NewParser(),
			".csv":  new(csv.Parser),
			".pptx": new(pptx.Parser),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Supports reports whether a parser is registered for the extension.
func (r *Registry) Supports(ext string) bool {
	_, ok := r.parsers[strings.ToLower(ext)]
	return ok
}

// Extensions returns the registered extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Extract resolves the parser from the path extension and returns the
// extracted text.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	return r.ExtractAs(ctx, path, filepath.Ext(path))
}

// ExtractAs parses the file at path with the parser registered for ext.
// Callers use it when the format was resolved by content sniffing rather
// than by the file name.
func (r *Registry) ExtractAs(ctx context.Context, path, ext string) (string, error) {
	parser, ok := r.parsers[strings.ToLower(ext)]
	if !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(r.Extensions(), ", "))
	}
	f, err := document.NewFile(path)
	if err != nil {
		return "", err
	}
	buf := new(bytes.Buffer)
	if err := parser.Parse(ctx, f.Reader(), buf); err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	return buf.String(), nil
}

// Detect sniffs the file content and reports the matching supported
// extension, for files whose name carries no usable extension.
func (r *Registry) Detect(path string) (string, bool) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", false
	}
	for m := mtype; m != nil; m = m.Parent() {
		if ext := m.Extension(); ext != "" && r.Supports(ext) {
			return ext, true
		}
	}
	return "", false
}
