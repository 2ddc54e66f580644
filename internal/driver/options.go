package driver

import (
	"cjslex/internal/source"
)

// DefaultMaxDiagnostics is used when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

// Options configures one driver run.
type Options struct {
	// MaxDiagnostics caps the diagnostics kept per file.
	MaxDiagnostics int
	// Jobs limits concurrent scans; 0 means GOMAXPROCS.
	Jobs int
	// Include and Exclude are doublestar patterns relative to the scanned root.
	Include []string
	Exclude []string
	// Cache is consulted before scanning and filled afterwards; may be nil.
	Cache *ResultCache
	// Events receives progress for ScanFiles and ScanDir and is closed when
	// they return. May be nil.
	Events chan<- Event
	// Timings attaches a per-file timing diagnostic.
	Timings bool
	// FileSet receives ScanSource and ScanFile inputs; a fresh one is used when nil.
	FileSet *source.FileSet
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) fileSet() *source.FileSet {
	if o.FileSet != nil {
		return o.FileSet
	}
	return source.NewFileSet()
}
