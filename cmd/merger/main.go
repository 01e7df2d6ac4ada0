package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"spendmerge/internal/config"
	"spendmerge/internal/dataprocessing"
	"spendmerge/internal/exporter"
	"spendmerge/internal/files"
	"spendmerge/internal/infrastructure"
	"spendmerge/pkg/contracts/domain"
)

func main() {
	inDir := flag.String("in", "", "directory holding the FY<year> extract folders (defaults to config)")
	outDir := flag.String("out", "", "output directory for the combined parquet file (defaults to config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *inDir != "" {
		cfg.Paths.ExtractedDir = *inDir
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()
	logger = logger.With(slog.String("run_id", uuid.NewString()))

	logger.Info("Starting fiscal-year spending merge",
		slog.String("extracted_dir", cfg.Paths.ExtractedDir),
		slog.String("output_dir", cfg.Paths.OutputDir),
		slog.Int("first_fiscal_year", cfg.Processing.FirstFiscalYear),
		slog.Int("last_fiscal_year", cfg.Processing.LastFiscalYear))

	if err := run(cfg, logger); err != nil {
		logger.Error("Merge run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run executes the whole batch: discover each fiscal-year partition,
// clean it, merge, export, and summarize. Soft conditions (a missing
// partition) are absorbed with a warning; everything returned here is
// fatal and happens before any output file is written.
func run(cfg *config.Config, logger *slog.Logger) error {
	discovery := files.NewDiscovery(cfg.Paths.ExtractedDir)
	merger := dataprocessing.NewMerger(logger)

	for _, label := range cfg.FiscalYearLabels() {
		fmt.Printf("Processing %s...\n", label)

		fileInfo, candidates, ok := discovery.SelectPartitionFile(label)
		if !ok {
			logger.Warn("No CSV found for partition, skipping",
				slog.String("partition", label),
				slog.String("dir", cfg.Paths.ExtractedDir))
			fmt.Printf("  WARNING: no CSV found for %s\n", label)
			continue
		}
		if candidates > 1 {
			logger.Debug("Multiple candidate files, selected first by name",
				slog.String("partition", label),
				slog.String("selected", fileInfo.Name),
				slog.Int("candidates", candidates))
		}

		logger.Info("Reading partition file",
			slog.String("partition", label),
			slog.String("path", fileInfo.Path))

		records, err := dataprocessing.ParsePartition(fileInfo.Path, config.ColumnMap)
		if err != nil {
			return fmt.Errorf("process partition %s: %w", label, err)
		}
		fmt.Printf("  Rows: %d\n", len(records))

		merger.Append(domain.PartitionResult{
			Label:      label,
			SourcePath: fileInfo.Path,
			Records:    records,
		})
	}

	combined, err := merger.Combined()
	if err != nil {
		return fmt.Errorf("merge partitions: %w", err)
	}
	fmt.Printf("Total combined rows: %d\n", len(combined))

	outPath := cfg.CombinedFilePath()
	parquetWriter := exporter.NewParquetWriter(logger)
	if err := parquetWriter.WriteCombined(outPath, combined); err != nil {
		return fmt.Errorf("export combined dataset: %w", err)
	}
	fmt.Printf("Exported to: %s\n", outPath)

	summarizer := dataprocessing.NewSummarizer(logger,
		cfg.Processing.FirstFiscalYear, cfg.Processing.LastFiscalYear)
	summary := summarizer.Summarize(combined)
	summarizer.Report(summary)

	csvWriter := exporter.NewCSVWriter(logger)
	if err := csvWriter.WriteFiscalYearCounts(cfg.SummaryFilePath(), summary); err != nil {
		// The parquet export already succeeded; the count report is advisory.
		logger.Warn("Failed to write fiscal year count report",
			slog.String("error", err.Error()))
	}

	return nil
}
