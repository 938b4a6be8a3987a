package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/invoice-insights/invoice-insights/internal/parse"
	"github.com/invoice-insights/invoice-insights/internal/textract"
)

// parse-expense normalizes a saved expense-analysis result (JSON) into the
// canonical invoice shape. Useful for replaying production payloads locally:
//
//	parse-expense -in dump.json
//
// The input is either a JobResult dump or a bare array of expense documents.
func main() {
	inPath := flag.String("in", "", "path to an expense-analysis JSON dump (default stdin)")
	pretty := flag.Bool("pretty", true, "indent the output JSON")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	data, err := readInput(*inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	docs, err := decodeDocuments(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode input:", err)
		os.Exit(1)
	}

	result := parse.NewParser(logger).Parse(docs)

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintln(os.Stderr, "encode result:", err)
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func decodeDocuments(data []byte) ([]textract.ExpenseDocument, error) {
	var docs []textract.ExpenseDocument
	if err := json.Unmarshal(data, &docs); err == nil {
		return docs, nil
	}

	var result struct {
		Documents []textract.ExpenseDocument `json:"documents"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result.Documents, nil
}
