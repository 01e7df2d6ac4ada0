// Package dataprocessing cleans per-fiscal-year contract transaction
// extracts and merges them into one combined dataset.
//
// The package is organized into four pieces:
//
//  1. Parser: reads a partition CSV, enforces the required source
//     columns, renames to the canonical schema, and coerces dates,
//     amounts, and the truncated zip field (unparsable values become
//     nulls, never row failures).
//  2. Fiscal year: derives the federal fiscal year from the action
//     date (FY starts October 1 of the prior calendar year).
//  3. Merger: accumulates cleaned partitions sequentially and
//     concatenates them in partition order.
//  4. Summarizer: per-fiscal-year row counts plus the missing-year
//     advisory.
package dataprocessing
