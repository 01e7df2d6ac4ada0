package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"spendmerge/pkg/contracts/domain"
)

const dateFormat = "2006-01-02"

// spendingRow is the parquet wire form of a combined dataset row.
// Dates travel as nullable UTF8 strings, the derived fiscal year as a
// nullable INT32.
type spendingRow struct {
	AwardAmount                   *float64 `parquet:"name=award_amount, type=DOUBLE, repetitiontype=OPTIONAL"`
	ActionDate                    *string  `parquet:"name=action_date, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	PeriodOfPerformanceStartDate  *string  `parquet:"name=period_of_performance_start_date, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	NAICSCode                     *string  `parquet:"name=naics_code, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ProductOrServiceCode          *string  `parquet:"name=product_or_service_code, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	RecipientUEI                  *string  `parquet:"name=recipient_uei, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	AwardingSubAgencyName         *string  `parquet:"name=awarding_sub_agency_name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	TypeOfContractPricing         *string  `parquet:"name=type_of_contract_pricing, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ExtentCompeted                *string  `parquet:"name=extent_competed, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	PrimaryPlaceOfPerformanceZip5 *string  `parquet:"name=primary_place_of_performance_zip_5, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ContractDescription           *string  `parquet:"name=contract_description, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ParentAwardAgencyID           *string  `parquet:"name=parent_award_agency_id, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	FiscalYear                    *int32   `parquet:"name=fiscal_year, type=INT32, repetitiontype=OPTIONAL"`
}

// ParquetWriter serializes the combined dataset to a single columnar
// file.
type ParquetWriter struct {
	logger *slog.Logger
}

// NewParquetWriter creates a new parquet writer instance
func NewParquetWriter(logger *slog.Logger) *ParquetWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParquetWriter{logger: logger}
}

// WriteCombined writes records to path, creating the containing
// directory if absent and overwriting any prior file unconditionally.
func (w *ParquetWriter) WriteCombined(path string, records []domain.SpendingRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}

	fw := writerfile.NewWriterFile(file)
	pw, err := writer.NewParquetWriter(fw, new(spendingRow), 1)
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to build parquet schema: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range records {
		if err := pw.Write(toRow(&records[i])); err != nil {
			pw.WriteStop()
			file.Close()
			return fmt.Errorf("failed to write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush parquet file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close parquet file: %w", err)
	}

	w.logger.Info("combined dataset exported",
		slog.String("path", path),
		slog.Int("rows", len(records)))

	return nil
}

// ReadCombined reads a combined dataset back from path. Used for
// round-trip verification.
func ReadCombined(path string) ([]domain.SpendingRecord, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(spendingRow), 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet schema: %w", err)
	}
	defer pr.ReadStop()

	num := int(pr.GetNumRows())
	rows := make([]spendingRow, num)
	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}

	records := make([]domain.SpendingRecord, 0, num)
	for i := range rows {
		records = append(records, fromRow(&rows[i]))
	}
	return records, nil
}

func toRow(rec *domain.SpendingRecord) *spendingRow {
	return &spendingRow{
		AwardAmount:                   rec.AwardAmount,
		ActionDate:                    formatDate(rec.ActionDate),
		PeriodOfPerformanceStartDate:  formatDate(rec.PeriodOfPerformanceStartDate),
		NAICSCode:                     rec.NAICSCode,
		ProductOrServiceCode:          rec.ProductOrServiceCode,
		RecipientUEI:                  rec.RecipientUEI,
		AwardingSubAgencyName:         rec.AwardingSubAgencyName,
		TypeOfContractPricing:         rec.TypeOfContractPricing,
		ExtentCompeted:                rec.ExtentCompeted,
		PrimaryPlaceOfPerformanceZip5: rec.PrimaryPlaceOfPerformanceZip5,
		ContractDescription:           rec.ContractDescription,
		ParentAwardAgencyID:           rec.ParentAwardAgencyID,
		FiscalYear:                    rec.FiscalYear,
	}
}

func fromRow(row *spendingRow) domain.SpendingRecord {
	return domain.SpendingRecord{
		AwardAmount:                   row.AwardAmount,
		ActionDate:                    parseDate(row.ActionDate),
		PeriodOfPerformanceStartDate:  parseDate(row.PeriodOfPerformanceStartDate),
		NAICSCode:                     row.NAICSCode,
		ProductOrServiceCode:          row.ProductOrServiceCode,
		RecipientUEI:                  row.RecipientUEI,
		AwardingSubAgencyName:         row.AwardingSubAgencyName,
		TypeOfContractPricing:         row.TypeOfContractPricing,
		ExtentCompeted:                row.ExtentCompeted,
		PrimaryPlaceOfPerformanceZip5: row.PrimaryPlaceOfPerformanceZip5,
		ContractDescription:           row.ContractDescription,
		ParentAwardAgencyID:           row.ParentAwardAgencyID,
		FiscalYear:                    row.FiscalYear,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateFormat)
	return &s
}

func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateFormat, *s)
	if err != nil {
		return nil
	}
	return &t
}
