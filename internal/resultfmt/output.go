// Package resultfmt renders scan results as JSON, msgpack, short diagnostics
// or a colored human-readable listing.
package resultfmt

import (
	"strings"

	"cjslex/internal/diag"
	"cjslex/internal/driver"
	"cjslex/internal/source"
)

// ErrorJSON is one scan error with its resolved position.
type ErrorJSON struct {
	Kind     string `json:"kind"`
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Pos      uint32 `json:"pos"`
	Line     uint32 `json:"line"`
	Col      uint32 `json:"col"`
	Message  string `json:"message"`
}

// FileJSON is the serialized result of one file.
type FileJSON struct {
	Path      string      `json:"path"`
	Imports   []string    `json:"imports"`
	Exports   []string    `json:"exports"`
	Reexports []string    `json:"reexports"`
	Errors    []ErrorJSON `json:"errors"`
	// Problem is set when the file could not be scanned at all.
	Problem string `json:"problem,omitempty"`
	Cached  bool   `json:"cached,omitempty"`
}

// Output представляет корневую структуру вывода
type Output struct {
	Files []FileJSON `json:"files"`
	Count int        `json:"count"`
}

// BuildOutput формирует структуру вывода без сериализации.
// Paths are relative to fs.BaseDir(); virtual files keep their label.
func BuildOutput(results []driver.FileResult, fs *source.FileSet) Output {
	files := make([]FileJSON, 0, len(results))
	for i := range results {
		files = append(files, buildFile(&results[i], fs))
	}
	return Output{Files: files, Count: len(files)}
}

func buildFile(r *driver.FileResult, fs *source.FileSet) FileJSON {
	out := FileJSON{
		Path:      displayPath(r, fs),
		Imports:   []string{},
		Exports:   []string{},
		Reexports: []string{},
		Errors:    []ErrorJSON{},
		Cached:    r.Cached,
	}
	if r.Result == nil {
		out.Problem = firstProblem(r.Bag)
		return out
	}
	out.Imports = append(out.Imports, r.Result.Imports...)
	out.Exports = append(out.Exports, r.Result.Exports...)
	out.Reexports = append(out.Reexports, r.Result.Reexports...)
	for _, e := range r.Result.Errors {
		var lc source.LineCol
		if fs != nil && r.File != nil {
			lc, _ = fs.Resolve(source.At(r.File.ID, e.Pos))
		}
		out.Errors = append(out.Errors, ErrorJSON{
			Kind:     e.Kind.String(),
			Code:     e.Kind.Code().ID(),
			Severity: strings.ToLower(e.Severity().String()),
			Pos:      e.Pos,
			Line:     lc.Line,
			Col:      lc.Col,
			Message:  e.Message,
		})
	}
	return out
}

func displayPath(r *driver.FileResult, fs *source.FileSet) string {
	if r.File != nil && r.File.Flags&source.FileVirtual != 0 {
		return r.File.Path
	}
	if fs == nil {
		return r.Path
	}
	rel, err := source.RelativePath(r.Path, fs.BaseDir())
	if err != nil {
		return r.Path
	}
	return rel
}

func firstProblem(bag *diag.Bag) string {
	if bag == nil {
		return "not scanned"
	}
	for _, d := range bag.Items() {
		if d.Severity == diag.SevError {
			return d.Message
		}
	}
	return "not scanned"
}
