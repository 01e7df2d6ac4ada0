package domain

import "time"

// SpendingRecord is the canonical cleaned form of a single contract
// transaction row. Every fiscal-year extract is normalized to this
// schema regardless of which source columns its raw file carried.
// Nullable fields are pointers; nil means the source value was missing
// or failed coercion.
type SpendingRecord struct {
	AwardAmount                   *float64
	ActionDate                    *time.Time
	PeriodOfPerformanceStartDate  *time.Time
	NAICSCode                     *string
	ProductOrServiceCode          *string
	RecipientUEI                  *string
	AwardingSubAgencyName         *string
	TypeOfContractPricing         *string
	ExtentCompeted                *string
	PrimaryPlaceOfPerformanceZip5 *string
	ContractDescription           *string
	ParentAwardAgencyID           *string

	// FiscalYear is derived from ActionDate; nil when the date is nil.
	FiscalYear *int32
}

// PartitionResult holds the cleaned rows read from one fiscal-year
// partition together with where they came from.
type PartitionResult struct {
	Label      string
	SourcePath string
	Records    []SpendingRecord
}
