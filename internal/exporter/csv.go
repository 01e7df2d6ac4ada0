package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"spendmerge/internal/dataprocessing"
)

// CSVWriter provides CSV export functionality for run reports.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers []string
	Records [][]string
}

// WriteCSV writes data to a CSV file with the given options,
// creating the containing directory if needed.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	w.logger.Info("csv report written",
		slog.String("path", filePath),
		slog.Int("record_count", len(options.Records)))

	return nil
}

// WriteFiscalYearCounts writes the verification summary as a small CSV
// report next to the combined dataset.
func (w *CSVWriter) WriteFiscalYearCounts(filePath string, sum dataprocessing.Summary) error {
	records := make([][]string, 0, len(sum.Counts)+2)
	for _, c := range sum.Counts {
		records = append(records, []string{
			fmt.Sprintf("FY%d", c.FiscalYear),
			strconv.Itoa(c.Rows),
		})
	}
	if sum.NullRows > 0 {
		records = append(records, []string{"(none)", strconv.Itoa(sum.NullRows)})
	}
	records = append(records, []string{"TOTAL", strconv.Itoa(sum.Total)})

	return w.WriteCSV(filePath, WriteOptions{
		Headers: []string{"fiscal_year", "row_count"},
		Records: records,
	})
}
