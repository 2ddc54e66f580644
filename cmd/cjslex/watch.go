package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cjslex/internal/driver"
	"cjslex/internal/source"
)

var errWatchArgs = errors.New("--watch needs exactly one directory")

// runWatch rescans one directory until interrupted. Every rescan prints the
// full result set; the cache keeps unchanged files cheap.
func runWatch(cmd *cobra.Command, args []string, sf scanFlags, opts driver.Options) error {
	root, err := watchRoot(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	round := 0
	return driver.Watch(ctx, root, opts, driver.DefaultDebounce, func(fs *source.FileSet, results []driver.FileResult, err error) {
		round++
		if err != nil {
			fmt.Fprintf(errOut, "scan failed: %v\n", err)
			return
		}
		writeWatchHeader(errOut, round, root)
		if err := writeResults(out, sf.format, results, fs); err != nil {
			fmt.Fprintf(errOut, "failed to write results: %v\n", err)
		}
	})
}

func watchRoot(args []string) (string, error) {
	if len(args) == 0 {
		return ".", nil
	}
	if len(args) != 1 || args[0] == "-" {
		return "", errWatchArgs
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", args[0], err)
	}
	if !info.IsDir() {
		return "", errWatchArgs
	}
	return args[0], nil
}

func writeWatchHeader(w io.Writer, round int, root string) {
	if state.quiet {
		return
	}
	header := fmt.Sprintf("-- scan #%d of %s --", round, root)
	if state.color {
		header = color.New(color.Faint).Sprint(header)
	}
	fmt.Fprintln(w, header)
}

