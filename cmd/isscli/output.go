package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/JonMunkholm/ISS/internal/ingest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validOutput(format string) bool {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return true
	}
	return false
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4472C4")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// view is a rendered table: a title, headers and string rows.
type view struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// renderTables writes each view as a bordered lipgloss table.
func renderTables(w io.Writer, views ...view) error {
	for i, v := range views {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if v.Title != "" {
			if _, err := fmt.Fprintln(w, titleStyle.Render(v.Title)); err != nil {
				return err
			}
		}
		if len(v.Rows) == 0 {
			if _, err := fmt.Fprintln(w, "(none)"); err != nil {
				return err
			}
			continue
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			Headers(v.Headers...).
			Rows(v.Rows...)
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
	}
	return nil
}

// write renders data in the structured formats, or the views for table.
func write(w io.Writer, format string, data any, views ...view) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderTables(w, views...)
	}
}

// loadTable reads a CSV or Excel export from disk and types its cells.
func loadTable(path string) (*core.Table, error) {
	if !ingest.Supported(path) {
		return nil, fmt.Errorf("%s: %w", path, ingest.ErrUnsupportedFormat)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheet, err := ingest.Read(filepath.Base(path), f)
	if err != nil {
		return nil, err
	}
	t := core.NewTable(sheet.Columns, sheet.Rows)

	slog.Debug("file loaded", "path", path, "rows", len(t.Records), "columns", len(t.Columns))
	for _, w := range core.ValidateTable(t) {
		slog.Warn("validation", "path", path, "warning", w.Message)
	}
	return t, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
