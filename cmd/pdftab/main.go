// Command pdftab extracts tables or text from a PDF and writes the
// result in the chosen format.
//
// Usage:
//
//	pdftab -in report.pdf -mode tables -format csv -out report.csv
//	pdftab -in report.pdf -mode text -format docx -out report.docx
//	pdftab -in report.pdf -mode tables -format sqlite -out report.db
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	processor "github.com/mdYoungDOer/pdf-processor"
	"github.com/mdYoungDOer/pdf-processor/export"
)

var (
	inPath   = flag.String("in", "", "Input PDF file (required)")
	mode     = flag.String("mode", "tables", "What to extract: tables or text")
	format   = flag.String("format", "csv", "Output format: csv, xlsx, sqlite (tables); txt, docx (text)")
	outPath  = flag.String("out", "", "Output file (required)")
	pageList = flag.String("pages", "", "Comma-separated 1-based pages (default all)")
	table    = flag.String("table", "extracted", "Table name for sqlite output")
	verbose  = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(logger); err != nil {
		logger.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	p := processor.Open(*inPath).WithLogger(logger)

	if *pageList != "" {
		pages, err := parsePages(*pageList)
		if err != nil {
			return err
		}
		p = p.Pages(pages...)
	}

	switch *mode {
	case "tables":
		ds, warnings, err := p.Dataset()
		if err != nil {
			return err
		}
		warn(logger, warnings)
		if ds.IsEmpty() {
			logger.Warn("no tables found", "file", *inPath)
		}

		switch *format {
		case "csv":
			return writeFile(func(f *os.File) error { return export.WriteCSV(f, ds) })
		case "xlsx":
			return writeFile(func(f *os.File) error { return export.WriteXLSX(f, ds) })
		case "sqlite":
			return export.WriteSQLite(*outPath, *table, ds)
		default:
			return fmt.Errorf("format %q not valid for tables (csv, xlsx, sqlite)", *format)
		}

	case "text":
		text, warnings, err := p.Text()
		if err != nil {
			return err
		}
		warn(logger, warnings)
		if strings.TrimSpace(text) == "" {
			logger.Warn("no text found", "file", *inPath)
		}

		switch *format {
		case "txt":
			return writeFile(func(f *os.File) error { return export.WriteText(f, text) })
		case "docx":
			return writeFile(func(f *os.File) error { return export.WriteDOCX(f, text) })
		default:
			return fmt.Errorf("format %q not valid for text (txt, docx)", *format)
		}

	default:
		return fmt.Errorf("mode %q not valid (tables, text)", *mode)
	}
}

func writeFile(write func(*os.File) error) error {
	f, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", *outPath, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func parsePages(s string) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q: %w", part, err)
		}
		pages = append(pages, n)
	}
	return pages, nil
}

func warn(logger *slog.Logger, warnings []processor.Warning) {
	for _, w := range warnings {
		logger.Warn("skipped", "page", w.Page, "stage", string(w.Stage), "detail", w.Message)
	}
}
