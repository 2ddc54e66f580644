package cjs

import (
	"cjslex/internal/diag"
	"cjslex/internal/source"
)

type Options struct {
	// Reporter получает диагностики после завершения сканирования; может быть nil.
	Reporter diag.Reporter
}

// report forwards collected errors once the scan is over. Detectors drop
// errors when they roll back, so nothing is sent while scanning.
func (s *Scanner) report() {
	ReportErrors(s.opts.Reporter, s.file, s.result.Errors)
}

// ReportErrors sends errs to r as diagnostics. The span covers the offending
// byte, or is empty when the error sits at the end of file.
func ReportErrors(r diag.Reporter, file *source.File, errs []Error) {
	if r == nil || file == nil {
		return
	}
	size := NewCursor(file).Limit
	for _, e := range errs {
		sp := source.At(file.ID, e.Pos)
		if e.Pos < size {
			sp.End = e.Pos + 1
		}
		diag.NewReportBuilder(r, e.Severity(), e.Kind.Code(), sp, e.Message).Emit()
	}
}
