package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/case-framework/discovery-builder/pkg/utils"
	"github.com/spf13/cobra"
)

var errLintFailed = errors.New("lint failed")

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		format   string
		strict    bool
		showLogic bool
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:   "survey-lint <file>...",
		Short: "Check survey documents for broken display and skip logic",
		Long: `Check survey documents for broken display and skip logic.

Every file may hold a survey or an autosaved draft. Logic cycles and unreadable files are
errors; broken, unlinked, unreachable or conflicting conditions are warnings.

Examples:
  survey-lint surveys/*.json
  survey-lint --show-logic onboarding.json
  survey-lint --strict --format json onboarding.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q", format)
			}
			utils.InitLogger(utils.LoggerConfig{LogLevel: logLevel})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			reports := make([]fileReport, 0, len(args))
			failed := false
			for _, path := range args {
				r := lintFile(path)
				if r.HasErrors() || (strict && r.WarningCount() > 0) {
					failed = true
				}
				reports = append(reports, r)
			}

			if format == "json" {
				if err := writeJSONReports(out, reports); err != nil {
					return err
				}
			} else {
				writeTextReports(out, reports, showLogic)
			}

			slog.Debug("survey lint finished", slog.Int("files", len(reports)), slog.Bool("failed", failed))
			if failed {
				return errLintFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings too")
	cmd.Flags().BoolVar(&showLogic, "show-logic", false, "print a summary of each question's display and skip logic (text format)")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	return cmd
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errLintFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
