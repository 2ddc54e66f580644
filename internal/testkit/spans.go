package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cjslex/internal/diag"
	"cjslex/internal/source"
)

// CheckDiagnosticSpans runs a minimal set of span invariants on diagnostics
// reported for one file:
// 1) every primary and note span points at sf
// 2) Start <= End <= len(content)
// 3) a span is empty only at the end of the content or at offset 0
func CheckDiagnosticSpans(items []diag.Diagnostic, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	check := func(sp source.Span, what string) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.End < sp.Start {
			return fmt.Errorf("%s span is reversed: %v", what, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, lenContent)
		}
		if sp.Empty() && sp.Start != lenContent && sp.Start != 0 {
			return fmt.Errorf("%s span is empty inside the content: %v", what, sp)
		}
		return nil
	}
	for i, d := range items {
		if err := check(d.Primary, fmt.Sprintf("diagnostic %d (%s)", i, d.Code.ID())); err != nil {
			return err
		}
		for j, n := range d.Notes {
			if err := check(n.Span, fmt.Sprintf("note %d of diagnostic %d", j, i)); err != nil {
				return err
			}
		}
	}
	return nil
}
