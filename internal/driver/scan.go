package driver

import (
	"context"
	"fmt"
	"time"

	"cjslex/internal/cjs"
	"cjslex/internal/diag"
	"cjslex/internal/observ"
	"cjslex/internal/source"
	"cjslex/internal/trace"
)

// ScanSource scans an in-memory buffer registered as a virtual file.
func ScanSource(ctx context.Context, label string, src []byte, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := opts.fileSet()
	file := fs.Get(fs.AddVirtual(label, src))
	if !file.ValidUTF8() {
		return nil, fmt.Errorf("%s: %w", label, cjs.ErrInvalidUTF8)
	}
	res := scanLoaded(ctx, file, opts)
	return &res, nil
}

// ScanFile loads path and scans it. Invalid UTF-8 is an error here; ScanFiles
// reports it as a diagnostic instead.
func ScanFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fs := opts.fileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	file := fs.Get(id)
	if !file.ValidUTF8() {
		return nil, fmt.Errorf("%s: %w", path, cjs.ErrInvalidUTF8)
	}
	res := scanLoaded(ctx, file, opts)
	return &res, nil
}

// scanLoaded scans a file that already sits in a FileSet.
func scanLoaded(ctx context.Context, file *source.File, opts Options) FileResult {
	res := FileResult{
		Path: file.Path,
		File: file,
		Bag:  diag.NewBag(opts.maxDiagnostics()),
	}
	span, _ := trace.Start(ctx, trace.ScopeFile, "file:"+file.Path)
	started := time.Now()

	if !file.ValidUTF8() {
		res.Bag.Add(diag.NewError(diag.IOInvalidUTF8, source.At(file.ID, 0), "source is not valid UTF-8, file skipped"))
		span.End("invalid utf-8")
		return res
	}

	timer := observ.NewTimer()
	idx := timer.Begin("cache")
	cached, hit, err := opts.Cache.Get(file.Hash)
	if err != nil {
		res.Bag.Add(cacheWarning(file, "read", err))
	}
	timer.End(idx, hitNote(hit))

	if hit {
		res.Result = cached
		res.Cached = true
		trace.Point(ctx, trace.ScopeDetail, "cache-hit", file.Path)
	} else {
		idx = timer.Begin("scan")
		sc, err := cjs.New(file, cjs.Options{})
		if err != nil {
			timer.End(idx, "rejected")
			res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.At(file.ID, 0), err.Error()))
			span.End("rejected")
			return res
		}
		res.Result = sc.Scan()
		timer.End(idx, "")

		idx = timer.Begin("store")
		if err := opts.Cache.Put(file.Hash, res.Result); err != nil {
			res.Bag.Add(cacheWarning(file, "write", err))
		}
		timer.End(idx, "")
	}

	cjs.ReportErrors(diag.BagReporter{Bag: res.Bag}, file, res.Result.Errors)
	res.Elapsed = time.Since(started)
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, file, timer.Report())
	}

	span.WithExtra("exports", fmt.Sprint(len(res.Result.Exports)))
	span.WithExtra("imports", fmt.Sprint(len(res.Result.Imports)))
	span.End(fmt.Sprintf("errors=%d cached=%t", len(res.Result.Errors), res.Cached))
	return res
}

func hitNote(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func cacheWarning(file *source.File, op string, err error) diag.Diagnostic {
	return diag.New(diag.SevWarning, diag.IOCacheError, source.At(file.ID, 0),
		fmt.Sprintf("result cache %s failed: %v", op, err))
}
