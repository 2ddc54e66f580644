// Package diag defines the diagnostic model shared by the scanner, the driver
// and the CLI.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short human oriented text.
//   - Primary – source.Span pointing to the offending bytes.
//   - Notes – optional secondary spans with extra context.
//
// # Emitting diagnostics
//
// Producers talk to a Reporter. ReportBuilder (NewReportBuilder, ReportError,
// ReportWarning) lets callers chain WithNote before Emit. BagReporter collects
// everything into a Bag, which supports sorting, deduplication and merging.
//
// Package diag performs no IO. Rendering lives in internal/resultfmt; the
// short one-line form used by golden tests is FormatShortDiagnostics.
package diag
