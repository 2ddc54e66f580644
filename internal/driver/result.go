package driver

import (
	"time"

	"cjslex/internal/cjs"
	"cjslex/internal/diag"
	"cjslex/internal/source"
)

// FileResult is the outcome of scanning one file.
type FileResult struct {
	Path string
	// File is nil when the file could not be loaded.
	File *source.File
	// Result is nil when the file was not scanned (load failure, invalid UTF-8).
	// Results served from the cache are shared and must not be modified.
	Result  *cjs.ParseResult
	Bag     *diag.Bag
	Cached  bool
	Elapsed time.Duration
}

// Failed reports whether the file produced error diagnostics or no result.
func (r *FileResult) Failed() bool {
	return r.Result == nil || r.Bag.HasErrors()
}
