package document

import (
	"bytes"
	"context"
	"io"
)

// Parser extracts plain text from one document format. Implementations
// read the whole document from a bytes.Reader and write the extracted
// text to an io.Writer.
type Parser interface {
	Parse(context.Context, *bytes.Reader, io.Writer) error
}
