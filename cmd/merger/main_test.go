package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendmerge/internal/config"
	"spendmerge/internal/dataprocessing"
	"spendmerge/internal/exporter"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.ExtractedDir = filepath.Join(t.TempDir(), "extracted")
	cfg.Paths.OutputDir = filepath.Join(t.TempDir(), "out")
	return cfg
}

// writePartition writes a partition CSV with n rows carrying the given
// action date.
func writePartition(t *testing.T, baseDir, label, actionDate string, n int) {
	t.Helper()

	dir := filepath.Join(baseDir, label)
	require.NoError(t, os.MkdirAll(dir, 0755))

	var sb strings.Builder
	sb.WriteString(strings.Join(config.SourceColumns(), ","))
	sb.WriteString("\n")
	for i := 0; i < n; i++ {
		row := []string{
			fmt.Sprintf("%d.50", 1000+i), // federal_action_obligation
			actionDate,
			actionDate,     // period_of_performance_start_date
			"541511",       // naics_code
			"D302",         // product_or_service_code
			"ABC123DEF456", // recipient_uei
			"Test Agency",  // awarding_sub_agency_name
			"FIRM FIXED PRICE",
			"FULL AND OPEN COMPETITION",
			"123456789", // primary_place_of_performance_zip_4
			"services",  // transaction_description
			"9700",      // parent_award_agency_id
		}
		sb.WriteString(strings.Join(row, ","))
		sb.WriteString("\n")
	}

	path := filepath.Join(dir, strings.ToLower(label)+"_extract.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0644))
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	writePartition(t, cfg.Paths.ExtractedDir, "FY2017", "2017-01-15", 100)
	writePartition(t, cfg.Paths.ExtractedDir, "FY2019", "2019-03-01", 50)
	// FY2018 deliberately absent.

	require.NoError(t, run(cfg, discardLogger()))

	combined, err := exporter.ReadCombined(cfg.CombinedFilePath())
	require.NoError(t, err)
	require.Len(t, combined, 150)

	summarizer := dataprocessing.NewSummarizer(discardLogger(), 2017, 2025)
	sum := summarizer.Summarize(combined)
	require.Len(t, sum.Counts, 2)
	assert.Equal(t, int32(2017), sum.Counts[0].FiscalYear)
	assert.Equal(t, 100, sum.Counts[0].Rows)
	assert.Equal(t, int32(2019), sum.Counts[1].FiscalYear)
	assert.Equal(t, 50, sum.Counts[1].Rows)
	assert.Contains(t, sum.Missing, 2018)
	assert.Contains(t, sum.Missing, 2025)
	assert.NotContains(t, sum.Missing, 2017)

	// Summary CSV sidecar was written too.
	content, err := os.ReadFile(cfg.SummaryFilePath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "FY2017,100")
	assert.Contains(t, string(content), "TOTAL,150")
}

func TestRun_NoPartitionsIsFatal(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.Paths.ExtractedDir, 0755))

	err := run(cfg, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, dataprocessing.ErrNoPartitions)

	_, statErr := os.Stat(cfg.CombinedFilePath())
	assert.True(t, os.IsNotExist(statErr), "no output should be written")
}

func TestRun_MissingColumnAbortsBeforeExport(t *testing.T) {
	cfg := testConfig(t)
	writePartition(t, cfg.Paths.ExtractedDir, "FY2017", "2017-01-15", 10)

	// A later partition with a truncated header.
	dir := filepath.Join(cfg.Paths.ExtractedDir, "FY2019")
	require.NoError(t, os.MkdirAll(dir, 0755))
	cols := config.SourceColumns()[:11]
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "fy2019_extract.csv"),
		[]byte(strings.Join(cols, ",")+"\n"), 0644))

	err := run(cfg, discardLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, dataprocessing.ErrMissingColumn)

	_, statErr := os.Stat(cfg.CombinedFilePath())
	assert.True(t, os.IsNotExist(statErr), "no output should be written")
}

func TestRun_SkipsMissingPartitionsAndContinues(t *testing.T) {
	cfg := testConfig(t)
	writePartition(t, cfg.Paths.ExtractedDir, "FY2025", "2024-10-01", 5)

	require.NoError(t, run(cfg, discardLogger()))

	combined, err := exporter.ReadCombined(cfg.CombinedFilePath())
	require.NoError(t, err)
	require.Len(t, combined, 5)
	// October 2024 belongs to FY2025.
	assert.Equal(t, int32(2025), *combined[0].FiscalYear)
}
