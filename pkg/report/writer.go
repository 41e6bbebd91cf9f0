package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/entrhq/sapweb/pkg/rfp"
)

// Writer saves records as artifacts under one directory.
type Writer struct {
	outputDir string
}

// NewWriter creates a writer for outputDir. The directory is created on
// first write.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// WriteRecord saves <rfp>.json and <rfp>.md and returns their paths.
func (w *Writer) WriteRecord(rec *rfp.Record) ([]string, error) {
	if rec.RFPNumber == "" {
		return nil, fmt.Errorf("record has no RFP number")
	}
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonPath := filepath.Join(w.outputDir, rec.RFPNumber+".json")
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	if writeErr := os.WriteFile(jsonPath, append(data, '\n'), 0600); writeErr != nil {
		return nil, fmt.Errorf("failed to write record JSON: %w", writeErr)
	}

	mdPath := filepath.Join(w.outputDir, rec.RFPNumber+".md")
	if writeErr := os.WriteFile(mdPath, []byte(RecordMarkdown(rec)), 0600); writeErr != nil {
		return nil, fmt.Errorf("failed to write record markdown: %w", writeErr)
	}

	return []string{jsonPath, mdPath}, nil
}
