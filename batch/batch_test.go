package batch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/EPH4-AI/ai-rag-chunkenizer/chunker"
	"github.com/EPH4-AI/ai-rag-chunkenizer/extractor"
)

type fieldCounter struct{}

func (fieldCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// textParser copies document bytes through, failing on a content marker so
// tests can trigger per-file extraction failures.
type textParser struct{}

func (textParser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if bytes.Contains(data, []byte("boom")) {
		return errors.New("malformed document")
	}
	_, err = writer.Write(data)
	return err
}

func newTestProcessor(t *testing.T, opts ...Option) *Processor {
	t.Helper()
	c, err := chunker.New(
		chunker.WithMaxTokens(2),
		chunker.WithOverlapTokens(0),
		chunker.WithTokenCounter(fieldCounter{}),
	)
	if err != nil {
		t.Fatal(err)
	}
	reg := extractor.NewRegistry(extractor.WithParser(".txt", textParser{}))
	opts = append([]Option{WithRegistry(reg)}, opts...)
	return New(c, opts...)
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "alpha beta gamma",
		"b.txt": "boom",
		"c.txt": "delta epsilon",
	})

	items, err := newTestProcessor(t, WithConcurrency(2)).Run(context.Background(), dir, "*")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("want 3 items, got %d", len(items))
	}

	byFile := make(map[string]Item, len(items))
	for _, it := range items {
		byFile[it.File] = it
	}
	if it := byFile["a.txt"]; !it.OK() || it.Chunks != 2 || it.Tokens != 3 {
		t.Errorf("a.txt item %+v", it)
	}
	if it := byFile["b.txt"]; it.OK() || !strings.HasPrefix(it.Status, "error: ") {
		t.Errorf("b.txt should fail, got %+v", it)
	}
	if it := byFile["c.txt"]; !it.OK() || it.Chunks != 1 {
		t.Errorf("c.txt item %+v", it)
	}
}

func TestRunWritesResults(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	writeFiles(t, dir, map[string]string{"doc.txt": "alpha beta gamma"})

	items, err := newTestProcessor(t, WithOutputDir(outDir)).Run(context.Background(), dir, "*")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || !items[0].OK() {
		t.Fatalf("items %+v", items)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "doc.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"source": "doc.txt"`, `"total_chunks": 2`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("result file missing %s:\n%s", key, data)
		}
	}
}

func TestRunSkipsUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"doc.txt":    "alpha",
		"binary.exe": "\x00\x01",
	})

	items, err := newTestProcessor(t).Run(context.Background(), dir, "*")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].File != "doc.txt" {
		t.Errorf("items %+v", items)
	}
}

func TestRunGlobFilter(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"keep.txt": "alpha",
		"skip.txt": "beta",
	})

	items, err := newTestProcessor(t).Run(context.Background(), dir, "keep.*")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].File != "keep.txt" {
		t.Errorf("items %+v", items)
	}
}

func TestRunEmptyDirectory(t *testing.T) {
	items, err := newTestProcessor(t).Run(context.Background(), t.TempDir(), "*")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Errorf("want no items, got %+v", items)
	}
}
