package resultfmt

import (
	"fmt"
	"io"

	"cjslex/internal/diag"
	"cjslex/internal/driver"
	"cjslex/internal/source"
)

// Short writes every diagnostic of results, one per line, in the stable
// `<severity> <CODE> <path>:<line>:<col> <message>` form. A file listed
// twice contributes its diagnostics once.
func Short(w io.Writer, results []driver.FileResult, fs *source.FileSet) error {
	all := diag.NewBag(0)
	for i := range results {
		all.Merge(results[i].Bag)
	}
	all.Dedup()
	text := diag.FormatShortDiagnostics(all.Items(), fs, false)
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
