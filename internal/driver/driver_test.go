package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"cjslex/internal/cjs"
	"cjslex/internal/diag"
	"cjslex/internal/source"
	"cjslex/internal/testkit"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestScanSource(t *testing.T) {
	res, err := ScanSource(context.Background(), "<stdin>", []byte("exports.a = 1; module.exports.b = require('./b');"), Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, res.Result.Exports)
	assert.Equal(t, []string{"./b"}, res.Result.Imports)
	assert.Zero(t, res.Bag.Len())
	assert.False(t, res.Failed())
}

func TestScanSourceInvalidUTF8(t *testing.T) {
	_, err := ScanSource(context.Background(), "bad", []byte{'a', 0xff}, Options{})
	assert.ErrorIs(t, err, cjs.ErrInvalidUTF8)
}

func TestScanFileReportsDiagnostics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.js")
	writeFile(t, path, "exports.x = 1;\n)")

	res, err := ScanFile(context.Background(), path, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"x"}, res.Result.Exports)
	assert.Equal(t, []diag.Code{diag.LexUnexpectedBracket}, codes(res.Bag))
	assert.True(t, res.Failed())

	require.NoError(t, testkit.CheckDiagnosticSpans(res.Bag.Items(), res.File))
	d := res.Bag.Items()[0]
	assert.Equal(t, uint32(15), d.Primary.Start)
	assert.Equal(t, uint32(16), d.Primary.End)
}

func TestScanFileMissing(t *testing.T) {
	_, err := ScanFile(context.Background(), filepath.Join(t.TempDir(), "nope.js"), Options{})
	assert.Error(t, err)
}

func TestScanFileTimings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.js")
	writeFile(t, path, "exports.a = 1")

	res, err := ScanFile(context.Background(), path, Options{Timings: true})
	require.NoError(t, err)
	require.Equal(t, []diag.Code{diag.ObsTimings}, codes(res.Bag))
	assert.Contains(t, res.Bag.Items()[0].Notes[0].Msg, `"phases"`)
	assert.False(t, res.Bag.HasErrors())
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.js", "lib/b.cjs", "lib/c.min.js", ".git/hook.js", "docs/readme.md", "vendor/v.js"} {
		writeFile(t, filepath.Join(root, name), "")
	}

	files, err := Discover(root, []string{"**/*.js", "**/*.cjs"}, []string{"**/*.min.js", "vendor"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.js"),
		filepath.Join(root, "lib", "b.cjs"),
	}, files)
}

func TestDiscoverInvalidPattern(t *testing.T) {
	_, err := Discover(t.TempDir(), []string{"["}, nil)
	assert.ErrorContains(t, err, "invalid include pattern")
}

func TestExpand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), "")
	writeFile(t, filepath.Join(root, "notes.txt"), "")

	files, err := Expand([]string{
		filepath.Join(root, "notes.txt"),
		root,
		filepath.Join(root, "a.js"),
	}, []string{"**/*.js"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "notes.txt"),
		filepath.Join(root, "a.js"),
	}, files)

	_, err = Expand([]string{filepath.Join(root, "missing")}, nil, nil)
	assert.ErrorContains(t, err, "does not exist")
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), "exports.a = 1")
	writeFile(t, filepath.Join(root, "b.js"), "exports.b = '\xff'")
	writeFile(t, filepath.Join(root, "c", "d.js"), "module.exports = require('./e')")

	events := make(chan Event, 16)
	fs, results, err := ScanDir(context.Background(), root, Options{
		Include: []string{"**/*.js"},
		Jobs:    2,
		Events:  events,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []string{"a"}, results[0].Result.Exports)

	assert.Nil(t, results[1].Result)
	assert.Equal(t, []diag.Code{diag.IOInvalidUTF8}, codes(results[1].Bag))

	assert.Equal(t, []string{"./e"}, results[2].Result.Reexports)
	assert.Equal(t, "c/d.js", fs.Get(results[2].File.ID).FormatPath("relative", root))

	final := map[string]Status{}
	var seen int
	for ev := range events {
		seen++
		final[ev.File] = ev.Status
	}
	assert.Equal(t, 9, seen, "queued, scanning and final status per file")
	assert.Equal(t, StatusDone, final[filepath.Join(root, "a.js")])
	assert.Equal(t, StatusError, final[filepath.Join(root, "b.js")])
}

func TestScanFilesLoadError(t *testing.T) {
	root := t.TempDir()
	missing := filepath.Join(root, "gone.js")

	fs, results, err := ScanFiles(context.Background(), root, []string{missing}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Failed())
	require.Equal(t, []diag.Code{diag.IOLoadFileError}, codes(results[0].Bag))

	f := fs.Get(results[0].Bag.Items()[0].Primary.File)
	assert.Equal(t, results[0].Path, f.Path)
}

func TestScanFilesCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ScanFiles(ctx, root, []string{filepath.Join(root, "a.js")}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResultCacheServesRepeatedContent(t *testing.T) {
	cache, err := NewResultCache(8, nil)
	require.NoError(t, err)
	opts := Options{Cache: cache}

	first, err := ScanSource(context.Background(), "one", []byte("exports.x = 1; )"), opts)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := ScanSource(context.Background(), "two", []byte("exports.x = 1; )"), opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Result.Exports, second.Result.Exports)
	assert.Equal(t, codes(first.Bag), codes(second.Bag), "cached results replay diagnostics")

	assert.Equal(t, CacheStats{Hits: 1, Misses: 1}, cache.Stats())
	assert.Equal(t, 1, cache.Len())
}

func TestResultCacheDiskTier(t *testing.T) {
	disk, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)

	res, err := cjs.Parse([]byte("exports.a = '\\0'"), "x")
	require.NoError(t, err)
	var key [32]byte
	key[0] = 1

	writer, err := NewResultCache(0, disk)
	require.NoError(t, err)
	require.NoError(t, writer.Put(key, res))

	reader, err := NewResultCache(4, disk)
	require.NoError(t, err)
	got, ok, err := reader.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, res.Exports, got.Exports)
	assert.Equal(t, res.Errors, got.Errors)
	assert.Equal(t, 1, reader.Len(), "disk hit is promoted to memory")
}

func TestDiskCacheBadEntriesAreMisses(t *testing.T) {
	disk, err := OpenDiskCache(t.TempDir())
	require.NoError(t, err)

	var corrupt, outdated [32]byte
	corrupt[0], outdated[0] = 1, 2

	writeFile(t, disk.pathFor(corrupt), "not msgpack")
	data, err := msgpack.Marshal(&DiskPayload{Schema: diskCacheSchemaVersion + 1, Exports: []string{"x"}})
	require.NoError(t, err)
	writeFile(t, disk.pathFor(outdated), string(data))

	for _, key := range [][32]byte{corrupt, outdated} {
		res, ok, err := disk.Get(key)
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, res)
	}

	require.NoError(t, disk.DropAll())
	_, err = os.Stat(filepath.Join(disk.Dir(), "results"))
	assert.True(t, os.IsNotExist(err))
}

func TestWatchRescansOnChange(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.js"), "exports.a = 1;")
	writeFile(t, filepath.Join(root, "skip", "x.js"), "exports.x = 1;")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scans := make(chan []FileResult, 8)
	done := make(chan error, 1)
	opts := Options{Include: []string{"**/*.js"}, Exclude: []string{"skip"}}
	go func() {
		done <- Watch(ctx, root, opts, 20*time.Millisecond, func(_ *source.FileSet, results []FileResult, err error) {
			assert.NoError(t, err)
			scans <- results
		})
	}()

	next := func() []FileResult {
		t.Helper()
		select {
		case res := <-scans:
			return res
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a scan")
			return nil
		}
	}

	first := next()
	require.Len(t, first, 1)
	assert.Equal(t, []string{"a"}, first[0].Result.Exports)

	writeFile(t, filepath.Join(root, "lib", "b.js"), "module.exports = require('./a');")
	var second []FileResult
	for len(second) < 2 {
		second = next()
	}
	require.Len(t, second, 2)
	assert.Equal(t, []string{"./a"}, second[1].Result.Reexports)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestWatchRelevant(t *testing.T) {
	opts := Options{Include: []string{"**/*.js"}, Exclude: []string{"**/*.min.js"}}
	root := filepath.FromSlash("/p")

	assert.True(t, watchRelevant(root, filepath.FromSlash("/p/src/a.js"), opts))
	assert.False(t, watchRelevant(root, filepath.FromSlash("/p/src/a.min.js"), opts))
	assert.False(t, watchRelevant(root, filepath.FromSlash("/p/readme.md"), opts))
	assert.False(t, watchRelevant(root, filepath.FromSlash("/other/a.js"), opts))
}
