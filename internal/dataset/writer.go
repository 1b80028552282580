// Package dataset builds training CSVs by crawling match histories and
// extracting feature rows, deduplicating with bloom filters.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"rank-predictor/internal/features"
)

// Writer appends feature rows to a CSV file whose header is exactly the
// model column schema, optionally with a trailing Tier label column.
type Writer struct {
	file    *os.File
	csv     *csv.Writer
	labeled bool
	rows    int
}

// NewWriter creates the output file and writes the header row.
func NewWriter(path string, labeled bool) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating dataset directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating dataset file: %w", err)
	}

	w := &Writer{
		file:    f,
		csv:     csv.NewWriter(f),
		labeled: labeled,
	}

	header := make([]string, 0, features.NumModelColumns+1)
	header = append(header, features.ModelColumns...)
	if labeled {
		header = append(header, "Tier")
	}
	if err := w.csv.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}

	return w, nil
}

// Append writes one feature row. tier is ignored for unlabeled writers.
func (w *Writer) Append(row features.FeatureRow, tier int) error {
	vector := row.Vector()

	record := make([]string, 0, len(vector)+1)
	for _, v := range vector {
		record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
	}
	if w.labeled {
		record = append(record, strconv.Itoa(tier))
	}

	if err := w.csv.Write(record); err != nil {
		return err
	}
	w.rows++
	return nil
}

// Rows returns the number of data rows written so far.
func (w *Writer) Rows() int {
	return w.rows
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
