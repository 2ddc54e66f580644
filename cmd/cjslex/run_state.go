package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cjslex/internal/config"
)

// runState is what every command needs after flags and config are merged.
type runState struct {
	cfg     config.Config
	color   bool
	quiet   bool
	timings bool
	cleanup []func()
}

var state runState

func prepareRun(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.Load(config.LoadOptions{ConfigPath: configPath})
	if err != nil {
		return err
	}

	if flags.Changed("max-diagnostics") {
		if cfg.Scan.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	colorMode := cfg.Output.Color
	if flags.Changed("color") {
		if colorMode, err = flags.GetString("color"); err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	useColor, err := readColorMode(colorMode)
	if err != nil {
		return err
	}
	// fatih/color читает глобальный флаг, в том числе в version.Colored.
	color.NoColor = !useColor

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	state = runState{cfg: cfg, color: useColor, quiet: quiet, timings: timings}

	stopTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	state.cleanup = append(state.cleanup, stopTrace)
	return nil
}

func finishRun(*cobra.Command, []string) {
	for i := len(state.cleanup) - 1; i >= 0; i-- {
		state.cleanup[i]()
	}
	state.cleanup = nil
}

func readColorMode(value string) (bool, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "", nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}
