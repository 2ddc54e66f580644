// Package trace provides structured tracing for cjslex runs.
//
// # Usage
//
//	cjslex scan --trace=- --trace-level=detail ./node_modules/react
//
// StreamTracer writes every event immediately in text or NDJSON form; Nop is
// used when tracing is off.
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Failures only
//   - LevelPhase: Driver and pass boundaries
//   - LevelDetail: One span per scanned file
//   - LevelDebug: Everything, including cache hits
//
// # Context Propagation
//
// The tracer and the current span travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopePass, "scan-dir")
//	defer span.End("")
package trace
