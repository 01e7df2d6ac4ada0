package dataprocessing

import "time"

// FiscalYearOf returns the federal fiscal year for a transaction date.
// The fiscal year starts October 1 of the prior calendar year, so
// 2024-10-01 falls in FY2025 and 2025-09-30 in FY2025. A nil date
// yields a nil fiscal year.
func FiscalYearOf(date *time.Time) *int32 {
	if date == nil {
		return nil
	}
	fy := int32(date.Year())
	if date.Month() >= time.October {
		fy++
	}
	return &fy
}
