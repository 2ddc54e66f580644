package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"cjslex/internal/cjs"
	"cjslex/internal/observ"
	"cjslex/internal/prof"
	"cjslex/internal/source"
	"cjslex/internal/trace"
)

var benchCmd = &cobra.Command{
	Use:   "bench <files...>",
	Short: "Time repeated scans of the given files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().Int("iterations", 10, "scans per file")
	benchCmd.Flags().String("cpuprofile", "", "write a CPU profile to file")
	benchCmd.Flags().String("memprofile", "", "write a heap profile to file after the run")
	benchCmd.Flags().String("exectrace", "", "write a runtime execution trace to file")
}

func runBench(cmd *cobra.Command, args []string) error {
	iterations, err := cmd.Flags().GetInt("iterations")
	if err != nil {
		return fmt.Errorf("failed to get iterations flag: %w", err)
	}
	if iterations <= 0 {
		return fmt.Errorf("--iterations must be positive, got %d", iterations)
	}

	fs := source.NewFileSet()
	files := make([]*source.File, 0, len(args))
	for _, path := range args {
		id, err := fs.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		file := fs.Get(id)
		if !file.ValidUTF8() {
			return fmt.Errorf("%s: %w", path, cjs.ErrInvalidUTF8)
		}
		files = append(files, file)
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	span, _ := trace.Start(cmd.Context(), trace.ScopePass, "bench")
	stats := make([]observ.Stats, 0, len(files))
	for _, file := range files {
		samples := observ.NewSamples(file.Path, len(file.Content), iterations)
		for range iterations {
			samples.Time(func() {
				// Scan кэширует результат, поэтому каждый прогон на новом сканере.
				sc, err := cjs.New(file, cjs.Options{})
				if err == nil {
					sc.Scan()
				}
			})
		}
		stats = append(stats, samples.Stats())
	}
	span.End(fmt.Sprintf("%d files x %d", len(files), iterations))

	renderBenchTable(cmd.OutOrStdout(), stats)
	return nil
}

func renderBenchTable(out io.Writer, stats []observ.Stats) {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	number := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("file", "bytes", "runs", "min", "median", "mean", "max", "MB/s").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == 0:
				return header
			case col == 0:
				return cell
			default:
				return number
			}
		})
	for _, st := range stats {
		t.Row(
			st.Name,
			strconv.Itoa(st.Bytes),
			strconv.Itoa(st.Runs),
			st.Min.String(),
			st.Median.String(),
			st.Mean.String(),
			st.Max.String(),
			fmt.Sprintf("%.1f", st.ThroughputMBs()),
		)
	}
	fmt.Fprintln(out, t.Render())
}

// setupProfiling enables the profilers requested by bench flags. The returned
// cleanup is safe to call multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	cpuProfile, err := cmd.Flags().GetString("cpuprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	memProfile, err := cmd.Flags().GetString("memprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	tracePath, err := cmd.Flags().GetString("exectrace")
	if err != nil {
		return nil, fmt.Errorf("failed to get exectrace flag: %w", err)
	}

	stopCPU := func() {}
	stopTrace := func() {}
	writeMem := func() {}

	if cpuProfile != "" {
		if err := prof.StartCPU(cpuProfile); err != nil {
			return nil, fmt.Errorf("failed to start cpu profile: %w", err)
		}
		stopCPU = prof.StopCPU
	}
	if tracePath != "" {
		if err := prof.StartTrace(tracePath); err != nil {
			// ensure cpu profile is stopped on error
			stopCPU()
			return nil, fmt.Errorf("failed to start trace: %w", err)
		}
		stopTrace = prof.StopTrace
	}
	if memProfile != "" {
		writeMem = func() {
			if err := prof.WriteMem(memProfile); err != nil {
				fmt.Fprintf(os.Stderr, "failed to write heap profile: %v\n", err)
			}
		}
	}

	cleaned := false
	return func() {
		if cleaned {
			return
		}
		cleaned = true
		stopTrace()
		stopCPU()
		writeMem()
	}, nil
}
