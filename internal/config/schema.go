package config

// ColumnMapping binds a canonical output column to the raw extract
// column it is read from.
type ColumnMapping struct {
	Canonical string
	Source    string
}

// ColumnMap lists the required extract columns and their canonical
// names, in output order. The mapping is configuration, not logic:
// a schema change is an edit here, nothing else.
var ColumnMap = []ColumnMapping{
	{Canonical: "award_amount", Source: "federal_action_obligation"},
	{Canonical: "action_date", Source: "action_date"},
	{Canonical: "period_of_performance_start_date", Source: "period_of_performance_start_date"},
	{Canonical: "naics_code", Source: "naics_code"},
	{Canonical: "product_or_service_code", Source: "product_or_service_code"},
	{Canonical: "recipient_uei", Source: "recipient_uei"},
	{Canonical: "awarding_sub_agency_name", Source: "awarding_sub_agency_name"},
	{Canonical: "type_of_contract_pricing", Source: "type_of_contract_pricing"},
	{Canonical: "extent_competed", Source: "extent_competed"},
	{Canonical: "primary_place_of_performance_zip_5", Source: "primary_place_of_performance_zip_4"},
	{Canonical: "contract_description", Source: "transaction_description"},
	{Canonical: "parent_award_agency_id", Source: "parent_award_agency_id"},
}

// SourceColumns returns the raw extract column names the cleaner must
// find in every partition header.
func SourceColumns() []string {
	cols := make([]string, 0, len(ColumnMap))
	for _, m := range ColumnMap {
		cols = append(cols, m.Source)
	}
	return cols
}

// CanonicalColumns returns the output column names in schema order,
// including the derived fiscal_year column.
func CanonicalColumns() []string {
	cols := make([]string, 0, len(ColumnMap)+1)
	for _, m := range ColumnMap {
		cols = append(cols, m.Canonical)
	}
	return append(cols, "fiscal_year")
}
