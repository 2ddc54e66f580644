package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cjslex/internal/diag"
	"cjslex/internal/source"
	"cjslex/internal/trace"
)

// ScanDir discovers files under root with opts.Include/Exclude and scans them.
func ScanDir(ctx context.Context, root string, opts Options) (*source.FileSet, []FileResult, error) {
	span, spanCtx := trace.Start(ctx, trace.ScopePass, "discover")
	files, err := Discover(root, opts.Include, opts.Exclude)
	if err != nil {
		span.End("failed")
		if opts.Events != nil {
			close(opts.Events)
		}
		return nil, nil, err
	}
	span.End(fmt.Sprintf("%d files", len(files)))
	return ScanFiles(spanCtx, root, files, opts)
}

// ScanFiles scans files in parallel. Results keep the order of files; a file
// that fails to load gets an I/O diagnostic instead of aborting the run.
// Cancellation is checked before each file.
func ScanFiles(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []FileResult, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}
	fileSet := source.NewFileSetWithBase(baseDir)

	span, ctx := trace.Start(ctx, trace.ScopePass, "scan-files")
	span.WithExtra("files", fmt.Sprint(len(files)))
	if len(files) == 0 {
		span.End("no files")
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен на запись: загружаем всё заранее.
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			// Пустой виртуальный файл, чтобы диагностика указывала на этот путь.
			id = fileSet.Add(path, nil, source.FileVirtual)
			loadErrors[i] = err
		}
		fileIDs[i] = id
		if err := send(ctx, opts.Events, Event{File: path, Status: StatusQueued}); err != nil {
			span.End("cancelled")
			return fileSet, nil, err
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := send(gctx, opts.Events, Event{File: path, Status: StatusWorking}); err != nil {
				return err
			}

			if loadErr := loadErrors[i]; loadErr != nil {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.NewError(diag.IOLoadFileError, source.At(fileIDs[i], 0), "failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: fileSet.Get(fileIDs[i]).Path, Bag: bag}
				return send(gctx, opts.Events, Event{File: path, Status: StatusError})
			}

			results[i] = scanLoaded(gctx, fileSet.Get(fileIDs[i]), opts)
			status := StatusDone
			if results[i].Failed() {
				status = StatusError
			}
			return send(gctx, opts.Events, Event{File: path, Status: status, Cached: results[i].Cached})
		})
	}

	if err := g.Wait(); err != nil {
		span.End("cancelled")
		return fileSet, results, err
	}
	span.End(fmt.Sprintf("%d files", len(files)))
	return fileSet, results, nil
}

func send(ctx context.Context, ch chan<- Event, ev Event) error {
	if ch == nil {
		return nil
	}
	select {
	case ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
