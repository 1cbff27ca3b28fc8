package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/JonMunkholm/ISS/internal/export"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// reconciliation is the structured output of the diff command.
type reconciliation struct {
	Start       string              `json:"start" yaml:"start"`
	End         string              `json:"end" yaml:"end"`
	Changes     []core.ChangeRecord `json:"changes" yaml:"changes"`
	Summary     []core.TypeSummary  `json:"summary" yaml:"summary"`
	Transitions []core.Transition   `json:"transitions" yaml:"transitions"`
}

func newDiffCmd(opts *options) *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "diff START END",
		Short: "Print the changes between a start and an end of shift export",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var start, end *core.Table
			var g errgroup.Group
			g.Go(func() (err error) {
				start, err = loadTable(args[0])
				return err
			})
			g.Go(func() (err error) {
				end, err = loadTable(args[1])
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			cmp := core.NewComparison(start.Records, end.Records)
			out := reconciliation{
				Start:       args[0],
				End:         args[1],
				Changes:     cmp.Changes,
				Summary:     cmp.Summary,
				Transitions: cmp.Transitions,
			}

			if exportPath != "" {
				if err := exportChanges(exportPath, out.Changes); err != nil {
					return err
				}
				slog.Info("changes exported", "path", exportPath, "changes", len(out.Changes))
			}

			return write(cmd.OutOrStdout(), opts.output, out,
				changesView(out.Changes), typeSummaryView(out.Summary), transitionsView(out.Transitions))
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "Also write the changes to a .xlsx or .csv file")
	return cmd
}

// exportChanges writes changes to path in the format named by its extension.
func exportChanges(path string, changes []core.ChangeRecord) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".csv" {
		return fmt.Errorf("export %s: extension must be .xlsx or .csv", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close export: %w", cerr)
		}
	}()

	if ext == ".csv" {
		return export.ChangesCSV(f, changes)
	}
	return export.ChangesXLSX(f, changes)
}

func changesView(changes []core.ChangeRecord) view {
	v := view{
		Title:   "Changes",
		Headers: []string{"Key", "Issue Type", "Change", "Start Qty", "End Qty", "Delta", "Start Status", "End Status"},
	}
	for _, c := range changes {
		v.Rows = append(v.Rows, []string{
			c.Key,
			c.IssueType,
			string(c.ChangeType),
			formatNumber(c.StartQty),
			formatNumber(c.EndQty),
			formatNumber(c.QtyDelta),
			c.StartStatus,
			c.EndStatus,
		})
	}
	return v
}

func typeSummaryView(summary []core.TypeSummary) view {
	v := view{
		Title:   "By issue type",
		Headers: []string{"Issue Type", "Added", "Removed", "Qty Up", "Qty Down", "Status", "Type", "Total"},
	}
	for _, s := range summary {
		v.Rows = append(v.Rows, []string{
			s.IssueType,
			strconv.Itoa(s.Added),
			strconv.Itoa(s.Removed),
			strconv.Itoa(s.QtyIncreased),
			strconv.Itoa(s.QtyDecreased),
			strconv.Itoa(s.StatusChanged),
			strconv.Itoa(s.TypeChanged),
			strconv.Itoa(s.Total()),
		})
	}
	return v
}

func transitionsView(transitions []core.Transition) view {
	v := view{
		Title:   "Type transitions",
		Headers: []string{"Transition", "Count"},
	}
	for _, t := range transitions {
		v.Rows = append(v.Rows, []string{t.Label(), strconv.Itoa(t.Count)})
	}
	return v
}
