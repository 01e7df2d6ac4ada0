package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"spendmerge/internal/config"
	"spendmerge/pkg/contracts/domain"
)

// ErrMissingColumn is returned when a partition header lacks one of the
// required source columns. It is fatal for the whole run: continuing
// would silently produce a dataset missing known fields.
var ErrMissingColumn = errors.New("required source column missing")

// dateLayouts are the formats seen in USAspending extracts. Anything
// else coerces to null rather than aborting the row.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// ParsePartition reads one fiscal-year CSV extract and returns its rows
// cleaned to the canonical schema. Every value is read as raw text
// first so identifiers like postal codes and agency IDs survive intact;
// typed fields are then coerced leniently, with unparsable values
// becoming nulls.
func ParsePartition(filePath string, mapping []config.ColumnMapping) ([]domain.SpendingRecord, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open partition file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // short rows yield nulls, not errors

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", filePath, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, m := range mapping {
		if _, ok := index[m.Source]; !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrMissingColumn, m.Source, filePath)
		}
	}

	var records []domain.SpendingRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row of %s: %w", filePath, err)
		}
		records = append(records, cleanRow(row, index, mapping))
	}

	slog.Debug("partition parsed",
		slog.String("path", filePath),
		slog.Int("rows", len(records)))

	return records, nil
}

// cleanRow renames a raw row to the canonical schema and coerces the
// typed fields.
func cleanRow(row []string, index map[string]int, mapping []config.ColumnMapping) domain.SpendingRecord {
	var rec domain.SpendingRecord

	for _, m := range mapping {
		raw := cell(row, index[m.Source])
		switch m.Canonical {
		case "award_amount":
			rec.AwardAmount = parseAmount(raw)
		case "action_date":
			rec.ActionDate = parseDate(raw)
		case "period_of_performance_start_date":
			rec.PeriodOfPerformanceStartDate = parseDate(raw)
		case "naics_code":
			rec.NAICSCode = textOrNil(raw)
		case "product_or_service_code":
			rec.ProductOrServiceCode = textOrNil(raw)
		case "recipient_uei":
			rec.RecipientUEI = textOrNil(raw)
		case "awarding_sub_agency_name":
			rec.AwardingSubAgencyName = textOrNil(raw)
		case "type_of_contract_pricing":
			rec.TypeOfContractPricing = textOrNil(raw)
		case "extent_competed":
			rec.ExtentCompeted = textOrNil(raw)
		case "primary_place_of_performance_zip_5":
			rec.PrimaryPlaceOfPerformanceZip5 = cleanZip(raw)
		case "contract_description":
			rec.ContractDescription = textOrNil(raw)
		case "parent_award_agency_id":
			rec.ParentAwardAgencyID = textOrNil(raw)
		}
	}

	rec.FiscalYear = FiscalYearOf(rec.ActionDate)
	return rec
}

// cell returns the value at idx, or "" when the row is too short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseDate coerces a raw date value; unparsable text becomes nil.
func parseDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}

// parseAmount coerces a raw numeric value; unparsable text (including
// thousands separators) becomes nil.
func parseAmount(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil
	}
	return &value
}

// cleanZip keeps the first five characters of a zip+4 value. The
// literal "nan" artifact of missing-value rendering normalizes to nil.
func cleanZip(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "nan") {
		return nil
	}
	runes := []rune(trimmed)
	if len(runes) > 5 {
		trimmed = string(runes[:5])
	}
	return &trimmed
}

// textOrNil passes text through, mapping empty values to nil so the
// columnar output carries real nulls.
func textOrNil(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}
