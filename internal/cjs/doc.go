// Package cjs finds the names a CommonJS module exports and the modules it
// requires by scanning its source once, without building a syntax tree.
//
// The scanner approximates JavaScript tokenization: it skips strings,
// templates, comments and regular expressions, tracks brackets on a stack and
// keeps one bit of state (expectExpr) to tell a regular expression from a
// division. On top of that it tries a few fixed patterns at keyword
// boundaries:
//
//	exports.name = ...
//	exports['name'] = ...
//	module.exports.name = ...
//	module.exports = { a, b: 1, c: 'x' }
//	module.exports = require('other')
//	require('module')
//
// A pattern that does not match rolls the cursor back and the text is
// scanned as ordinary code. Malformed input never stops a scan; problems are
// collected as Error values in ParseResult.Errors and, when Options.Reporter
// is set, forwarded as diag diagnostics once the scan is over.
package cjs
