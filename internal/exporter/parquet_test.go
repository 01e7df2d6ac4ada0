package exporter

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendmerge/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRecords() []domain.SpendingRecord {
	amount := 1500.75
	date := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	zip := "12345"
	agency := "Defense Logistics Agency"
	fy := int32(2025)

	return []domain.SpendingRecord{
		{
			AwardAmount:                   &amount,
			ActionDate:                    &date,
			AwardingSubAgencyName:         &agency,
			PrimaryPlaceOfPerformanceZip5: &zip,
			FiscalYear:                    &fy,
		},
		{}, // fully null row
	}
}

func TestParquetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "combined.parquet")

	writer := NewParquetWriter(discardLogger())
	require.NoError(t, writer.WriteCombined(path, sampleRecords()))

	// Containing directory was created on demand.
	_, err := os.Stat(path)
	require.NoError(t, err)

	got, err := ReadCombined(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	require.NotNil(t, first.AwardAmount)
	assert.InDelta(t, 1500.75, *first.AwardAmount, 1e-9)
	require.NotNil(t, first.ActionDate)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), *first.ActionDate)
	require.NotNil(t, first.FiscalYear)
	assert.Equal(t, int32(2025), *first.FiscalYear)
	require.NotNil(t, first.PrimaryPlaceOfPerformanceZip5)
	assert.Equal(t, "12345", *first.PrimaryPlaceOfPerformanceZip5)

	second := got[1]
	assert.Nil(t, second.AwardAmount)
	assert.Nil(t, second.ActionDate)
	assert.Nil(t, second.FiscalYear)
}

func TestWriteCombined_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "combined.parquet")

	writer := NewParquetWriter(discardLogger())
	require.NoError(t, writer.WriteCombined(path, sampleRecords()))
	require.NoError(t, writer.WriteCombined(path, sampleRecords()[:1]))

	got, err := ReadCombined(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWriteCombined_EmptyDataset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "combined.parquet")

	writer := NewParquetWriter(discardLogger())
	require.NoError(t, writer.WriteCombined(path, nil))

	got, err := ReadCombined(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
