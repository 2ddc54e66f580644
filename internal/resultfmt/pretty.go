package resultfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// PrettyOpts configures the human-readable listing.
type PrettyOpts struct {
	Color bool
	// Width is the terminal width used to lay out export names; 0 means 80.
	Width int
}

const labelWidth = 11

type palette struct {
	path, label, name, module, dim, errc, warn *color.Color
}

func newPalette(on bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		path:   mk(color.Bold),
		label:  mk(color.FgCyan),
		name:   mk(color.FgGreen),
		module: mk(color.FgYellow),
		dim:    mk(color.Faint),
		errc:   mk(color.FgRed, color.Bold),
		warn:   mk(color.FgMagenta),
	}
}

// Pretty печатает результаты в человекочитаемом виде:
//
//	<path>
//	  exports    a      b
//	  reexports  ./x
//	  imports    ./y
//	  error      <line>:<col> <CODE> <message>
//
// followed by a one-line summary.
func Pretty(w io.Writer, out Output, opts PrettyOpts) error {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	p := newPalette(opts.Color)

	var b strings.Builder
	var exports, imports, errs int
	for _, f := range out.Files {
		b.WriteString(p.path.Sprint(f.Path))
		if f.Cached {
			b.WriteString(p.dim.Sprint(" (cached)"))
		}
		b.WriteByte('\n')

		if f.Problem != "" {
			writeRow(&b, p, "skipped", p.errc.Sprint(f.Problem))
			errs++
			continue
		}

		if len(f.Exports) > 0 {
			grid := layoutNames(f.Exports, width-2-labelWidth)
			for i, row := range grid {
				label := ""
				if i == 0 {
					label = "exports"
				}
				writeRow(&b, p, label, p.name.Sprint(row))
			}
		}
		if len(f.Reexports) > 0 {
			writeRow(&b, p, "reexports", p.module.Sprint(strings.Join(f.Reexports, ", ")))
		}
		if len(f.Imports) > 0 {
			writeRow(&b, p, "imports", p.module.Sprint(strings.Join(f.Imports, ", ")))
		}
		for _, e := range f.Errors {
			label, c := "error", p.errc
			if e.Severity == "warning" {
				label, c = "warning", p.warn
			} else {
				errs++
			}
			writeRow(&b, p, label, fmt.Sprintf("%d:%d %s %s", e.Line, e.Col, c.Sprint(e.Code), e.Message))
		}
		exports += len(f.Exports)
		imports += len(f.Imports)
	}

	fmt.Fprintf(&b, "%s, %s, %s, %s\n",
		plural(out.Count, "file"), plural(exports, "export"),
		plural(imports, "import"), plural(errs, "error"))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, p palette, label, value string) {
	b.WriteString("  ")
	b.WriteString(p.label.Sprint(runewidth.FillRight(label, labelWidth)))
	b.WriteString(value)
	b.WriteByte('\n')
}

// layoutNames splits names into rows of equal-width cells that fit width.
// Width is measured in terminal cells, so wide and combining characters line up.
func layoutNames(names []string, width int) []string {
	cell := 0
	for _, n := range names {
		cell = max(cell, runewidth.StringWidth(n))
	}
	cell += 2
	perRow := max(1, width/cell)

	var rows []string
	for start := 0; start < len(names); start += perRow {
		end := min(start+perRow, len(names))
		var row strings.Builder
		for i := start; i < end; i++ {
			if i == end-1 {
				row.WriteString(names[i])
				break
			}
			row.WriteString(runewidth.FillRight(names[i], cell))
		}
		rows = append(rows, row.String())
	}
	return rows
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
