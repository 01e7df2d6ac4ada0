package dataprocessing

import (
	"errors"
	"log/slog"

	"spendmerge/pkg/contracts/domain"
)

// ErrNoPartitions is returned when not a single partition file could be
// read; there is nothing meaningful to export.
var ErrNoPartitions = errors.New("no partitions were read")

// Merger accumulates cleaned partition record sets and concatenates
// them into the combined dataset. Append order is preserved: the
// combined rows follow partition-label iteration order with no
// reordering or deduplication.
type Merger struct {
	logger     *slog.Logger
	partitions []domain.PartitionResult
	rows       int
}

// NewMerger creates a new merger instance
func NewMerger(logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{logger: logger}
}

// Append adds one cleaned partition to the accumulator.
func (m *Merger) Append(res domain.PartitionResult) {
	m.partitions = append(m.partitions, res)
	m.rows += len(res.Records)
	m.logger.Info("partition accumulated",
		slog.String("partition", res.Label),
		slog.String("source", res.SourcePath),
		slog.Int("rows", len(res.Records)))
}

// PartitionCount returns how many partitions were accumulated.
func (m *Merger) PartitionCount() int {
	return len(m.partitions)
}

// RowCount returns the total rows accumulated across partitions.
func (m *Merger) RowCount() int {
	return m.rows
}

// Combined returns the row-wise union of all accumulated partitions in
// append order. It fails with ErrNoPartitions when nothing was read.
func (m *Merger) Combined() ([]domain.SpendingRecord, error) {
	if len(m.partitions) == 0 {
		return nil, ErrNoPartitions
	}

	combined := make([]domain.SpendingRecord, 0, m.rows)
	for _, p := range m.partitions {
		combined = append(combined, p.Records...)
	}

	m.logger.Info("partitions merged",
		slog.Int("partitions", len(m.partitions)),
		slog.Int("total_rows", len(combined)))

	return combined, nil
}
