// Package controller provides output adapters for displaying generation
// results.
package controller

import (
	m "chisel.dev/pkg/chisel/internal/model"
)

// HeaderStat summarizes one generated or estimated header.
type HeaderStat struct {
	Header       m.HeaderID
	Declarations int
	Bytes        int
}

// ManifestStat summarizes the eligibility split of one manifest.
type ManifestStat struct {
	Manifest   m.Path
	Exportable int
	Skipped    int
}

// HeaderFile is one header found in an output directory.
type HeaderFile struct {
	Header m.Path
	Bytes  int
}

// UI defines the interface for displaying generation progress and results.
// Implementations can use different output methods.
type UI interface {
	// DisplayGeneration prints the per-header summary of a finished run.
	DisplayGeneration(libName string, stats []HeaderStat) error

	// DisplayEstimation prints the exportable/skipped split of a dry run.
	DisplayEstimation(stats []ManifestStat) error

	// DisplayHeaders prints the header files found in an output directory.
	DisplayHeaders(dir m.Path, headers []HeaderFile) error

	// DisplayError prints a user-facing failure.
	DisplayError(err error)
}
