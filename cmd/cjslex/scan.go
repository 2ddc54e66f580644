package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cjslex/internal/config"
	"cjslex/internal/driver"
	"cjslex/internal/observ"
	"cjslex/internal/resultfmt"
	"cjslex/internal/source"
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "List exports, requires and reexports of CommonJS files",
	Long: `Scan files and directories for CommonJS exports, require calls and
module.exports = require(...) reexports. Directories are walked with the
include/exclude globs from cjslex.toml or the flags below. A single "-"
reads one module from stdin.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("format", "", "output format (pretty|json|msgpack|short), default from config")
	scanCmd.Flags().Int("jobs", 0, "max parallel scans (0 = GOMAXPROCS)")
	scanCmd.Flags().StringSlice("include", nil, "glob of files to scan inside directories (repeatable)")
	scanCmd.Flags().StringSlice("exclude", nil, "glob of files or directories to skip (repeatable)")
	scanCmd.Flags().Bool("no-cache", false, "do not read or write the result cache")
	scanCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	scanCmd.Flags().Bool("fail-on-error", false, "exit with status 1 when any file has scan errors")
	scanCmd.Flags().Bool("watch", false, "rescan a directory whenever its files change")
}

type scanFlags struct {
	format      string
	uiMode      uiMode
	noCache     bool
	failOnError bool
	watch       bool
}

// applyScanFlags merges command flags over cfg; flags win over config and env.
func applyScanFlags(cmd *cobra.Command, cfg *config.Config) (scanFlags, error) {
	var sf scanFlags
	flags := cmd.Flags()
	var err error

	if flags.Changed("format") {
		if cfg.Output.Format, err = flags.GetString("format"); err != nil {
			return sf, fmt.Errorf("failed to get format flag: %w", err)
		}
		cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	}
	if flags.Changed("jobs") {
		if cfg.Scan.Jobs, err = flags.GetInt("jobs"); err != nil {
			return sf, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Changed("include") {
		if cfg.Scan.Include, err = flags.GetStringSlice("include"); err != nil {
			return sf, fmt.Errorf("failed to get include flag: %w", err)
		}
	}
	if flags.Changed("exclude") {
		if cfg.Scan.Exclude, err = flags.GetStringSlice("exclude"); err != nil {
			return sf, fmt.Errorf("failed to get exclude flag: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return sf, err
	}

	if sf.noCache, err = flags.GetBool("no-cache"); err != nil {
		return sf, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if sf.failOnError, err = flags.GetBool("fail-on-error"); err != nil {
		return sf, fmt.Errorf("failed to get fail-on-error flag: %w", err)
	}
	if sf.watch, err = flags.GetBool("watch"); err != nil {
		return sf, fmt.Errorf("failed to get watch flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return sf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if sf.uiMode, err = readUIMode(uiValue); err != nil {
		return sf, err
	}
	sf.format = cfg.Output.Format
	return sf, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := state.cfg
	sf, err := applyScanFlags(cmd, &cfg)
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxDiagnostics: cfg.Scan.MaxDiagnostics,
		Jobs:           cfg.Scan.Jobs,
		Include:        cfg.Scan.Include,
		Exclude:        cfg.Scan.Exclude,
		Timings:        state.timings,
	}
	if cfg.Cache.Enabled && !sf.noCache {
		opts.Cache = openResultCache(cfg, cmd.ErrOrStderr())
	}

	if sf.watch {
		return runWatch(cmd, args, sf, opts)
	}

	timer := observ.NewTimer()
	var (
		fs      *source.FileSet
		results []driver.FileResult
	)

	if len(args) == 1 && args[0] == "-" {
		idx := timer.Begin("scan")
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		fs = source.NewFileSet()
		opts.FileSet = fs
		res, err := driver.ScanSource(ctx, "<stdin>", src, opts)
		if err != nil {
			return err
		}
		results = []driver.FileResult{*res}
		timer.End(idx, "stdin")
	} else {
		if len(args) == 0 {
			args = []string{"."}
		}
		idx := timer.Begin("discover")
		files, err := driver.Expand(args, opts.Include, opts.Exclude)
		if err != nil {
			return err
		}
		timer.End(idx, fmt.Sprintf("%d files", len(files)))

		baseDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		idx = timer.Begin("scan")
		if shouldUseTUI(sf.uiMode, sf.format, len(files)) {
			fs, results, err = runScanWithUI(ctx, "scanning", baseDir, files, opts)
		} else {
			fs, results, err = driver.ScanFiles(ctx, baseDir, files, opts)
		}
		if err != nil {
			return err
		}
		timer.End(idx, fmt.Sprintf("jobs=%d", opts.Jobs))
	}

	idx := timer.Begin("output")
	if err := writeResults(cmd.OutOrStdout(), sf.format, results, fs); err != nil {
		return err
	}
	timer.End(idx, sf.format)

	if state.timings && !state.quiet {
		errOut := cmd.ErrOrStderr()
		fmt.Fprint(errOut, timer.Summary())
		if opts.Cache != nil {
			st := opts.Cache.Stats()
			fmt.Fprintf(errOut, "cache: %d hits, %d misses\n", st.Hits, st.Misses)
		}
	}

	if sf.failOnError && anyFailed(results) {
		return errScanFailed
	}
	return nil
}

func writeResults(w io.Writer, format string, results []driver.FileResult, fs *source.FileSet) error {
	switch format {
	case "json":
		return resultfmt.JSON(w, resultfmt.BuildOutput(results, fs))
	case "msgpack":
		return resultfmt.Msgpack(w, resultfmt.BuildOutput(results, fs))
	case "short":
		return resultfmt.Short(w, results, fs)
	default:
		return resultfmt.Pretty(w, resultfmt.BuildOutput(results, fs), resultfmt.PrettyOpts{
			Color: state.color,
			Width: terminalWidth(),
		})
	}
}

// openResultCache builds the memory tier and, when possible, the disk tier.
// A disk cache that cannot be opened only costs a warning.
func openResultCache(cfg config.Config, errOut io.Writer) *driver.ResultCache {
	var disk *driver.DiskCache
	dir, err := cfg.CacheDir()
	if err == nil {
		disk, err = driver.OpenDiskCache(dir)
	}
	if err != nil && !state.quiet {
		fmt.Fprintf(errOut, "warning: disk cache disabled: %v\n", err)
	}
	cache, err := driver.NewResultCache(cfg.Cache.MemoryEntries, disk)
	if err != nil {
		if !state.quiet {
			fmt.Fprintf(errOut, "warning: result cache disabled: %v\n", err)
		}
		return nil
	}
	return cache
}

func anyFailed(results []driver.FileResult) bool {
	for i := range results {
		if results[i].Failed() {
			return true
		}
	}
	return false
}
