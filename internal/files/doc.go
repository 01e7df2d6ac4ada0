// Package files locates the per-fiscal-year extract files on disk.
// Each FY folder is expected to hold one CSV; when more than one
// matches, the lexicographically first filename is selected so the run
// is reproducible regardless of filesystem listing order.
package files
