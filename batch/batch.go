// Package batch processes whole directories of documents, one chunking run
// per file. Runs are independent, so they execute concurrently; a failed
// document is recorded in its summary item and never aborts the rest of
// the batch.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/xid"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/EPH4-AI/ai-rag-chunkenizer/chunker"
	"github.com/EPH4-AI/ai-rag-chunkenizer/extractor"
)

// StatusSuccess marks a successfully processed item.
const StatusSuccess = "success"

// Item summarizes the outcome of one file in a batch.
type Item struct {
	File   string `json:"file"`
	Chunks int    `json:"chunks"`
	Tokens int    `json:"tokens"`
	Status string `json:"status"`
	Err    error  `json:"-"`
}

// OK reports whether the item was processed successfully.
func (it Item) OK() bool {
	return it.Err == nil
}

// target is a discovered file together with the extension resolving its
// parser (sniffed for extensionless files).
type target struct {
	path string
	ext  string
}

// Processor runs chunking over every supported document in a directory.
type Processor struct {
	chunker     *chunker.Chunkenizer
	registry    *extractor.Registry
	concurrency int
	outDir      string
	logger      *slog.Logger
}

type Option func(*Processor)

// WithConcurrency bounds the number of files processed at once. Default is 4.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithOutputDir writes each result as <stem>.json into dir.
func WithOutputDir(dir string) Option {
	return func(p *Processor) {
		p.outDir = dir
	}
}

// WithRegistry overrides the extraction registry used for discovery and
// extraction.
func WithRegistry(r *extractor.Registry) Option {
	return func(p *Processor) {
		p.registry = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

func New(c *chunker.Chunkenizer, opts ...Option) *Processor {
	p := &Processor{
		chunker:     c,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = extractor.NewRegistry()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Run processes every file in dir matching the glob pattern. It returns one
// Item per discovered file, in file name order. Only discovery and output
// directory failures abort the run.
func (p *Processor) Run(ctx context.Context, dir, pattern string) ([]Item, error) {
	logger := p.logger.With("run_id", xid.New().String())

	targets, err := p.discover(dir, pattern)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, nil
	}
	if p.outDir != "" {
		if err := os.MkdirAll(p.outDir, 0o755); err != nil {
			return nil, err
		}
	}
	logger.Info("batch started", "dir", dir, "files", len(targets))

	var (
		succeeded = atomic.NewInt64(0)
		failed    = atomic.NewInt64(0)
		items     = make([]Item, len(targets))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, tgt := range targets {
		i, tgt := i, tgt
		g.Go(func() error {
			item := p.processOne(ctx, tgt)
			if item.OK() {
				succeeded.Inc()
			} else {
				failed.Inc()
				logger.Warn("file failed", "file", item.File, "error", item.Err)
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return items, err
	}

	logger.Info("batch complete",
		"files", len(targets),
		"succeeded", succeeded.Load(),
		"failed", failed.Load(),
	)
	return items, nil
}

// discover returns the supported files in dir matching pattern, in sorted
// order. Files without an extension are included when content sniffing
// resolves them to a supported format.
func (p *Processor) discover(dir, pattern string) ([]target, error) {
	if pattern == "" {
		pattern = "*"
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)

	var targets []target
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(m))
		switch {
		case p.registry.Supports(ext):
			targets = append(targets, target{path: m, ext: ext})
		case ext == "":
			if det, ok := p.registry.Detect(m); ok {
				targets = append(targets, target{path: m, ext: det})
			}
		}
	}
	return targets, nil
}

// processOne runs a single chunking run and optionally writes its JSON
// result. Failures are folded into the returned Item.
func (p *Processor) processOne(ctx context.Context, tgt target) Item {
	name := filepath.Base(tgt.path)
	item := Item{File: name}

	text, err := p.registry.ExtractAs(ctx, tgt.path, tgt.ext)
	if err != nil {
		return item.fail(err)
	}
	result := p.chunker.ProcessText(text, name)
	item.Chunks = result.TotalChunks
	item.Tokens = result.TotalTokens
	item.Status = StatusSuccess

	if p.outDir != "" {
		if err := writeResult(p.outDir, tgt.path, result); err != nil {
			return item.fail(err)
		}
	}
	return item
}

func (it Item) fail(err error) Item {
	it.Err = err
	it.Status = "error: " + err.Error()
	return it
}

func writeResult(outDir, srcPath string, result *chunker.ChunkResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	return os.WriteFile(filepath.Join(outDir, stem+".json"), data, 0o644)
}
