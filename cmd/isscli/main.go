// Command isscli classifies, analyzes and reconciles ISS issue exports
// from the terminal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/JonMunkholm/ISS/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	output   string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "isscli",
		Short: "Classify, analyze and reconcile ISS issue exports",
		Long: `isscli reads CSV or Excel issue exports and reports what the
dashboard would show: per-row issue types, bucket metrics and the
changes between a start and an end of shift export.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !validOutput(opts.output) {
				return fmt.Errorf("unknown output format %q (want table, json or yaml)", opts.output)
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), opts.logLevel, "text"))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputTable, "Output format: table, json or yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(
		newClassifyCmd(opts),
		newAnalyzeCmd(opts),
		newDiffCmd(opts),
	)
	return root
}

func main() {
	// A .env file is optional for the CLI; existing env vars win.
	_ = godotenv.Load()

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err and, for known failures, the coded hint the web
// dashboard would show.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, "Error:", err)
	if core.IsUserFacing(err) {
		fmt.Fprintln(w, core.FormatUserError(err))
	}
}
