// Command tsz is the CLI driver: a spf13/cobra command tree exposing
// `tsz check`, `tsz batch`, and `tsz explain`, grounded on the teacher's
// demo/cmd/main.go cobra wiring (rootCmd + sub-commands, AddCommand, and
// os.Exit(1) on a failing Run).
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mohsen1/tsz-sub030/internal/batch"
	"github.com/mohsen1/tsz-sub030/internal/checker"
	"github.com/mohsen1/tsz-sub030/internal/config"
	"github.com/mohsen1/tsz-sub030/internal/diagcache"
	"github.com/mohsen1/tsz-sub030/internal/diagnostics"
	"github.com/mohsen1/tsz-sub030/pkg/tsz"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "tsz",
		Short: "tsz is a standalone TypeScript type-checker core",
		Long:  "tsz parses, binds, and type-checks TypeScript source without emitting JavaScript.",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a tsz.yaml options file (default: searched upward from cwd)")

	rootCmd.AddCommand(newCheckCmd(), newBatchCmd(), newExplainCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadOptions resolves checker.Options from --config, or from an
// upward-searched tsz.yaml, falling back to tsc's own defaults when
// neither is found.
func loadOptions() checker.Options {
	path := configPath
	if path == "" {
		if found, err := config.FindConfig("."); err == nil {
			path = found
		}
	}
	if path == "" {
		return checker.Options{Target: "ESNext", Module: "ESNext"}.Normalize()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tsz: %s\n", err)
		os.Exit(1)
	}
	return cfg.CheckerOptions()
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <files...>",
		Short: "Parse, bind, and type-check the given files",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opts := loadOptions()
			in := tsz.NewInterner()
			colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

			hasErrors := false
			for _, path := range args {
				src, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "tsz: %s\n", err)
					os.Exit(1)
				}
				f, parseErrs := tsz.ParseAndBind(path, string(src))
				for _, d := range parseErrs {
					printDiagnostic(d, colorize)
					hasErrors = true
				}
				diags := tsz.CheckFile(in, f, opts)
				for _, d := range diags {
					printDiagnostic(d, colorize)
					hasErrors = true
				}
			}
			if hasErrors {
				os.Exit(1)
			}
		},
	}
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Read one directory per stdin line and compile each",
		Run: func(cmd *cobra.Command, args []string) {
			opts := loadOptions()
			if err := batch.Run(os.Stdin, os.Stdout, os.Stderr, opts); err != nil {
				fmt.Fprintf(os.Stderr, "tsz: %s\n", err)
				os.Exit(1)
			}
		},
	}
}

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <code>",
		Short: "Look up a diagnostic code in the catalog",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var code int
			if _, err := fmt.Sscanf(args[0], "%d", &code); err != nil {
				fmt.Fprintf(os.Stderr, "tsz: %q is not a numeric diagnostic code\n", args[0])
				os.Exit(1)
			}
			cat, err := diagcache.Open()
			if err != nil {
				fmt.Fprintf(os.Stderr, "tsz: %s\n", err)
				os.Exit(1)
			}
			defer cat.Close()

			entry, ok, err := cat.Lookup(diagnostics.ErrorCode(code))
			if err != nil {
				fmt.Fprintf(os.Stderr, "tsz: %s\n", err)
				os.Exit(1)
			}
			if !ok {
				fmt.Printf("TS%d: no description in the catalog\n", code)
				return
			}
			fmt.Printf("TS%d (%s): %s\n", code, entry.Category, entry.Template)
		},
	}
}

// printDiagnostic writes a diagnostic in the tsc wire format, colorizing
// the severity keyword and code when stdout is a terminal — the same
// isatty.IsTerminal/IsCygwinTerminal gate the teacher uses before emitting
// ANSI from its term builtins.
func printDiagnostic(d *diagnostics.DiagnosticError, colorize bool) {
	if !colorize {
		fmt.Println(d.Error())
		return
	}
	const red = "\x1b[31m"
	const reset = "\x1b[0m"
	fmt.Printf("%s(%d,%d): %serror TS%d%s: %s\n",
		d.File, d.Token.Line, d.Token.Column, red, int(d.Code), reset, d.Message)
}
