// Command chunkenizer splits documents into token-budgeted chunks for RAG
// pipelines.
//
// Usage:
//
//	chunkenizer process <file> [flags]   chunk a single document
//	chunkenizer batch <dir> [flags]      chunk every supported document in a directory
//	chunkenizer info                     show supported formats and defaults
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/EPH4-AI/ai-rag-chunkenizer/batch"
	"github.com/EPH4-AI/ai-rag-chunkenizer/chunker"
	"github.com/EPH4-AI/ai-rag-chunkenizer/config"
	"github.com/EPH4-AI/ai-rag-chunkenizer/extractor"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "process":
		err = runProcess(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "info":
		err = runInfo()
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `chunkenizer - token-aware document chunking for RAG pipelines

Commands:
  process <file>   chunk a single document (PDF, DOCX, XLSX, XLS, CSV, PPTX)
  batch <dir>      chunk every supported document in a directory
  info             show supported formats and defaults

Run "chunkenizer <command> -h" for command flags.`)
}

// chunkFlags registers the flags shared by process and batch. Zero values
// mean "use the configured default".
type chunkFlags struct {
	maxTokens  int
	overlap    int
	model      string
	configFile string
}

func (cf *chunkFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&cf.maxTokens, "max-tokens", 0, "max tokens per chunk (default from config, 1000)")
	fs.IntVar(&cf.maxTokens, "m", 0, "shorthand for -max-tokens")
	fs.IntVar(&cf.overlap, "overlap", -1, "overlap tokens between chunks (default from config, 100)")
	fs.IntVar(&cf.overlap, "l", -1, "shorthand for -overlap")
	fs.StringVar(&cf.model, "model", "", "tokenizer model (default from config, gpt-4)")
	fs.StringVar(&cf.configFile, "config", "", "YAML config file")
}

// build loads the layered configuration and constructs the chunker.
func (cf *chunkFlags) build() (*chunker.Chunkenizer, *config.Config, error) {
	cfg, err := config.Load(cf.configFile)
	if err != nil {
		return nil, nil, err
	}
	if cf.maxTokens > 0 {
		cfg.MaxTokens = cf.maxTokens
	}
	if cf.overlap >= 0 {
		cfg.OverlapTokens = cf.overlap
	}
	if cf.model != "" {
		cfg.Model = cf.model
	}
	c, err := chunker.New(
		chunker.WithMaxTokens(cfg.MaxTokens),
		chunker.WithOverlapTokens(cfg.OverlapTokens),
		chunker.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, nil, err
	}
	return c, cfg, nil
}

func runProcess(args []string) error {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	var (
		cf      chunkFlags
		output  string
		preview int
		quiet   bool
	)
	cf.register(fs)
	fs.StringVar(&output, "output", "", "output JSON file")
	fs.StringVar(&output, "o", "", "shorthand for -output")
	fs.IntVar(&preview, "preview", 0, "preview first N chunks")
	fs.IntVar(&preview, "p", 0, "shorthand for -preview")
	fs.BoolVar(&quiet, "quiet", false, "minimal output, print JSON to stdout when no output file is set")
	fs.BoolVar(&quiet, "q", false, "shorthand for -quiet")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: chunkenizer process <file> [flags]")
	}
	path := fs.Arg(0)

	c, _, err := cf.build()
	if err != nil {
		return err
	}

	result, err := c.Process(context.Background(), path)
	if err != nil {
		return err
	}

	if !quiet {
		printSummary(result)
		if preview > 0 {
			printPreview(result, preview)
		}
	}

	if output != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return err
		}
		if !quiet {
			fmt.Printf("\nSaved to: %s\n", output)
		}
		return nil
	}
	if quiet {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return nil
}

func printSummary(result *chunker.ChunkResult) {
	avg := 0
	if result.TotalChunks > 0 {
		avg = result.TotalTokens / result.TotalChunks
	}
	fmt.Printf("Source:           %s\n", result.Source)
	fmt.Printf("Total chunks:     %d\n", result.TotalChunks)
	fmt.Printf("Total tokens:     %d\n", result.TotalTokens)
	fmt.Printf("Total characters: %d\n", result.TotalChars)
	fmt.Printf("Avg tokens/chunk: %d\n", avg)
}

func printPreview(result *chunker.ChunkResult, n int) {
	if n > result.TotalChunks {
		n = result.TotalChunks
	}
	fmt.Printf("\nPreview (first %d chunks):\n", n)
	for _, chunk := range result.Chunks[:n] {
		text := chunk.Text
		if len(text) > 200 {
			text = text[:200] + "..."
		}
		fmt.Printf("\n--- chunk %d (%d tokens, id %s)\n%s\n",
			chunk.Index+1, chunk.TokenCount, chunk.UUID(result.Source), text)
	}
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	var (
		cf          chunkFlags
		outputDir   string
		pattern     string
		concurrency int
	)
	cf.register(fs)
	fs.StringVar(&outputDir, "output", "", "output directory for per-file JSON results")
	fs.StringVar(&outputDir, "o", "", "shorthand for -output")
	fs.StringVar(&pattern, "glob", "*", "file pattern to match")
	fs.StringVar(&pattern, "g", "*", "shorthand for -glob")
	fs.IntVar(&concurrency, "concurrency", 0, "files processed in parallel (default from config, 4)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: chunkenizer batch <dir> [flags]")
	}
	dir := fs.Arg(0)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}

	c, cfg, err := cf.build()
	if err != nil {
		return err
	}
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}

	opts := []batch.Option{
		batch.WithConcurrency(concurrency),
		batch.WithLogger(slog.Default()),
	}
	if outputDir != "" {
		opts = append(opts, batch.WithOutputDir(outputDir))
	}

	items, err := batch.New(c, opts...).Run(context.Background(), dir, pattern)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No supported files found.")
		return nil
	}

	fmt.Printf("%-40s %8s %10s  %s\n", "FILE", "CHUNKS", "TOKENS", "STATUS")
	for _, item := range items {
		fmt.Printf("%-40s %8d %10d  %s\n", item.File, item.Chunks, item.Tokens, item.Status)
	}
	return nil
}

func runInfo() error {
	fmt.Println("chunkenizer - token-aware document chunking for RAG pipelines")
	fmt.Println()
	fmt.Println("Supported formats:")
	formats := []struct{ ext, desc, engine string }{
		{".pdf", "PDF documents", "ledongthuc/pdf"},
		{".docx", "Word documents", "fumiama/go-docx"},
		{".xlsx/.xls", "Excel spreadsheets", "xuri/excelize"},
		{".csv", "CSV files", "encoding/csv"},
		{".pptx", "PowerPoint presentations", "dgrr/quickxml"},
	}
	for _, f := range formats {
		fmt.Printf("  %-12s %-28s %s\n", f.ext, f.desc, f.engine)
	}
	fmt.Println()
	fmt.Println("Registered extensions:", strings.Join(extractor.NewRegistry().Extensions(), ", "))
	fmt.Println()
	fmt.Println("Default configuration:")
	fmt.Println("  Max tokens per chunk: 1000")
	fmt.Println("  Overlap tokens:       100")
	fmt.Println("  Tokenizer model:      gpt-4 (tiktoken)")
	return nil
}
