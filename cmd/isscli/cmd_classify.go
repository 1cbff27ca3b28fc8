package main

import (
	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/spf13/cobra"
)

// classifiedRow pairs a record with its issue type for structured output.
type classifiedRow struct {
	IssueType core.Category `json:"issueType" yaml:"issueType"`
	Record    core.Record   `json:"record" yaml:"record"`
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify FILE",
		Short: "Print every row with its issue type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTable(args[0])
			if err != nil {
				return err
			}

			rows := make([]classifiedRow, len(t.Records))
			v := view{Headers: append([]string{"IssueType"}, t.Columns...)}
			for i, rec := range t.Records {
				issueType := core.Classify(rec)
				rows[i] = classifiedRow{IssueType: issueType, Record: rec}

				line := make([]string, 0, len(v.Headers))
				line = append(line, string(issueType))
				for _, col := range t.Columns {
					line = append(line, rec.Get(col).String())
				}
				v.Rows = append(v.Rows, line)
			}
			return write(cmd.OutOrStdout(), opts.output, rows, v)
		},
	}
}
