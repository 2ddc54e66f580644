package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cjslex/internal/driver"
	"cjslex/internal/source"
	"cjslex/internal/ui"
)

type scanOutcome struct {
	fs      *source.FileSet
	results []driver.FileResult
	err     error
}

// runScanWithUI scans files while a Bubble Tea program draws progress on stderr.
func runScanWithUI(ctx context.Context, title, baseDir string, files []string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		fs, results, err := driver.ScanFiles(ctx, baseDir, files, optsCopy)
		outcomeCh <- scanOutcome{fs: fs, results: results, err: err}
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// Не даём сканеру застрять на отправке событий.
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
