// Package exporter serializes run outputs: the combined dataset as a
// single snappy-compressed parquet file, and the per-fiscal-year count
// summary as a CSV report.
package exporter
