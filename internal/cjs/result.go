package cjs

// ParseResult is everything one scan found. It shares no memory with the
// scanned buffer.
type ParseResult struct {
	// Imports holds one entry per matched require(...) call, in source order.
	Imports []string
	// Exports holds one entry per matched export site, in source order.
	Exports []string
	// Reexports has at most one element: the last `module.exports = require(...)`.
	Reexports []string
	Errors    []Error
}

// HasErrors reports whether any diagnostic is an error rather than a warning.
func (r *ParseResult) HasErrors() bool {
	for i := range r.Errors {
		if !r.Errors[i].Recoverable {
			return true
		}
	}
	return false
}
