package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// snippets cover each detector and literal scanner at least once, plus the
// truncated forms that used to be interesting.
var snippets = []string{
	"",
	"exports.a = 1",
	"exports['b'] = 2",
	"module.exports = { a, b: c, d: 'e', f: 1 }",
	"module.exports = require('./x')",
	"const x = require(\"y\")",
	"a = b / c / d",
	"if (x) /re/.test(y)",
	"return /[/]/g",
	"`a${ `b${c}` }d`",
	"'\\u{1F600}' + '\\uD83D\\uDE00'",
	"'\\u{110000}'",
	"'\\0' + '\\01'",
	"({[)]})",
	"exports.",
	"module.exports = {",
	"require('",
	"/* unterminated",
	"#!/usr/bin/env node\nexports.x = 1",
	"x exports.y = 1",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range snippets {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "cjs", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.js файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".js" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
