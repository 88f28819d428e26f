package document

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
)

// File is a local document read fully into memory for parsing.
type File struct {
	name string
	data []byte
	meta map[string]string
}

func NewFile(fname string) (*File, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	fileInfo, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if fileInfo.IsDir() {
		return nil, errors.New("document could not be a directory")
	}
	data, err := io.ReadAll(fp)
	if err != nil {
		return nil, err
	}
	return &File{
		name: fname,
		data: data,
		meta: map[string]string{
			"filename": fileInfo.Name(),
			"modtime":  strconv.FormatInt(fileInfo.ModTime().Unix(), 10),
		},
	}, nil
}

func (d *File) Name() string {
	return d.name
}

// Reader returns a fresh reader over the document bytes.
func (d *File) Reader() *bytes.Reader {
	return bytes.NewReader(d.data)
}

func (d *File) Size() int64 {
	return int64(len(d.data))
}

func (d *File) Meta() map[string]string {
	return d.meta
}
