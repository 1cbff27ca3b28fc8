package main

import (
	"strconv"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/JonMunkholm/ISS/internal/export"
	"github.com/spf13/cobra"
)

// analysis is the structured output of the analyze command.
type analysis struct {
	File       string                `json:"file" yaml:"file"`
	Rows       int                   `json:"rows" yaml:"rows"`
	Thresholds core.ThresholdsConfig `json:"thresholds" yaml:"thresholds"`
	Summary    []export.SummaryRow   `json:"summary" yaml:"summary"`
	Breakdown  []core.CategoryCount  `json:"breakdown" yaml:"breakdown"`
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		thresholdsFile string
		fcReceive      int
		fcActionable   int
		mfi            int
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Print dashboard bucket metrics for an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thresholds := core.DefaultThresholds()
			if thresholdsFile != "" {
				var err error
				if thresholds, err = core.LoadThresholdsFile(thresholdsFile); err != nil {
					return err
				}
			}

			// Explicit flags override the file.
			flags := cmd.Flags()
			if flags.Changed("fc-receive-threshold") {
				thresholds.FCReceiveAgeThreshold = fcReceive
			}
			if flags.Changed("fc-actionable-threshold") {
				thresholds.FCActionableAgeThreshold = fcActionable
			}
			if flags.Changed("mfi-threshold") {
				thresholds.MFIAgeThreshold = mfi
			}
			if err := thresholds.Validate(); err != nil {
				return err
			}

			t, err := loadTable(args[0])
			if err != nil {
				return err
			}

			result := core.Aggregate(t.Records, thresholds)
			out := analysis{
				File:       args[0],
				Rows:       len(t.Records),
				Thresholds: thresholds,
				Summary:    export.SummaryRows(result),
				Breakdown:  core.Breakdown(t.Records),
			}
			return write(cmd.OutOrStdout(), opts.output, out, summaryView(out), breakdownView(out))
		},
	}

	d := core.DefaultThresholds()
	cmd.Flags().StringVar(&thresholdsFile, "thresholds", "", "YAML file with age thresholds")
	cmd.Flags().IntVar(&fcReceive, "fc-receive-threshold", d.FCReceiveAgeThreshold, "FC Receive age threshold")
	cmd.Flags().IntVar(&fcActionable, "fc-actionable-threshold", d.FCActionableAgeThreshold, "FC Actionable age threshold")
	cmd.Flags().IntVar(&mfi, "mfi-threshold", d.MFIAgeThreshold, "MFI age threshold")
	return cmd
}

func summaryView(a analysis) view {
	v := view{
		Title:   "Summary",
		Headers: []string{"Category", "Issues", "Quantity", "Age Over Threshold"},
	}
	for _, row := range a.Summary {
		aged := ""
		if row.AgeOverThreshold != nil {
			aged = strconv.Itoa(*row.AgeOverThreshold)
		}
		v.Rows = append(v.Rows, []string{
			row.Category,
			strconv.Itoa(row.Issues),
			formatNumber(row.Quantity),
			aged,
		})
	}
	return v
}

func breakdownView(a analysis) view {
	v := view{
		Title:   "Issue types",
		Headers: []string{"Issue Type", "Rows"},
	}
	for _, c := range a.Breakdown {
		v.Rows = append(v.Rows, []string{string(c.Category), strconv.Itoa(c.Count)})
	}
	return v
}
