package dataprocessing

import (
	"fmt"
	"log/slog"
	"sort"

	"spendmerge/pkg/contracts/domain"
)

// FiscalYearCount is one row of the verification summary.
type FiscalYearCount struct {
	FiscalYear int32
	Rows       int
}

// Summary reports how the combined dataset breaks down by fiscal year.
// It is informational output, not a gating check: the run has already
// exported by the time it is computed.
type Summary struct {
	Counts   []FiscalYearCount // ascending fiscal year
	NullRows int               // rows whose action date failed to parse
	Total    int
	Missing  []int // expected fiscal years with no observed rows
}

// Summarizer groups the combined dataset by fiscal year and checks the
// observed years against the configured range.
type Summarizer struct {
	logger    *slog.Logger
	firstYear int
	lastYear  int
}

// NewSummarizer creates a summarizer for the given fiscal-year range.
func NewSummarizer(logger *slog.Logger, firstYear, lastYear int) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger, firstYear: firstYear, lastYear: lastYear}
}

// Summarize counts rows per fiscal year and computes the set of
// expected-but-absent years.
func (s *Summarizer) Summarize(records []domain.SpendingRecord) Summary {
	counts := make(map[int32]int)
	nullRows := 0
	for _, rec := range records {
		if rec.FiscalYear == nil {
			nullRows++
			continue
		}
		counts[*rec.FiscalYear]++
	}

	sum := Summary{
		NullRows: nullRows,
		Total:    len(records),
	}
	for fy, n := range counts {
		sum.Counts = append(sum.Counts, FiscalYearCount{FiscalYear: fy, Rows: n})
	}
	sort.Slice(sum.Counts, func(i, j int) bool {
		return sum.Counts[i].FiscalYear < sum.Counts[j].FiscalYear
	})

	for y := s.firstYear; y <= s.lastYear; y++ {
		if _, ok := counts[int32(y)]; !ok {
			sum.Missing = append(sum.Missing, y)
		}
	}

	return sum
}

// Report prints the per-fiscal-year count table and logs the
// missing-year advisory.
func (s *Summarizer) Report(sum Summary) {
	fmt.Println("VERIFICATION: row count per fiscal year")
	for _, c := range sum.Counts {
		fmt.Printf("  FY%d: %10d rows\n", c.FiscalYear, c.Rows)
	}
	if sum.NullRows > 0 {
		fmt.Printf("  (no fiscal year): %10d rows\n", sum.NullRows)
	}
	fmt.Printf("  TOTAL: %10d rows\n", sum.Total)

	s.logger.Info("fiscal year summary",
		slog.Int("fiscal_years", len(sum.Counts)),
		slog.Int("null_fiscal_year_rows", sum.NullRows),
		slog.Int("total_rows", sum.Total))

	if len(sum.Missing) > 0 {
		fmt.Printf("  MISSING fiscal years: %v\n", sum.Missing)
		s.logger.Warn("fiscal years with no data; download them before the next refresh",
			slog.Any("missing", sum.Missing))
	} else {
		fmt.Printf("  All fiscal years %d-%d are present.\n", s.firstYear, s.lastYear)
	}
}
