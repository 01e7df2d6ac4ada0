package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendmerge/pkg/contracts/domain"
)

func TestSummarizer_Summarize(t *testing.T) {
	summarizer := NewSummarizer(discardLogger(), 2017, 2025)

	var records []domain.SpendingRecord
	records = append(records, recordsWithYear(2019, 50)...)
	records = append(records, recordsWithYear(2017, 100)...)
	records = append(records, domain.SpendingRecord{}) // null fiscal year

	sum := summarizer.Summarize(records)

	require.Len(t, sum.Counts, 2)
	// Ascending fiscal-year order regardless of input order.
	assert.Equal(t, int32(2017), sum.Counts[0].FiscalYear)
	assert.Equal(t, 100, sum.Counts[0].Rows)
	assert.Equal(t, int32(2019), sum.Counts[1].FiscalYear)
	assert.Equal(t, 50, sum.Counts[1].Rows)

	assert.Equal(t, 1, sum.NullRows)
	assert.Equal(t, 151, sum.Total)

	assert.Equal(t, []int{2018, 2020, 2021, 2022, 2023, 2024, 2025}, sum.Missing)
}

func TestSummarizer_AllYearsPresent(t *testing.T) {
	summarizer := NewSummarizer(discardLogger(), 2020, 2022)

	var records []domain.SpendingRecord
	for y := int32(2020); y <= 2022; y++ {
		records = append(records, recordsWithYear(y, 1)...)
	}

	sum := summarizer.Summarize(records)
	assert.Empty(t, sum.Missing)
	assert.Equal(t, 3, sum.Total)
	assert.Zero(t, sum.NullRows)
}

func TestSummarizer_EmptyDataset(t *testing.T) {
	summarizer := NewSummarizer(discardLogger(), 2017, 2018)

	sum := summarizer.Summarize(nil)
	assert.Empty(t, sum.Counts)
	assert.Zero(t, sum.Total)
	assert.Equal(t, []int{2017, 2018}, sum.Missing)
}
