// Package export writes dashboard datasets and reconciliation results as
// spreadsheet and CSV files.
package export

import (
	"fmt"
	"io"

	"github.com/JonMunkholm/ISS/internal/core"
	"github.com/xuri/excelize/v2"
)

// IssueTypeColumn is the column appended by WithIssueType.
const IssueTypeColumn = "IssueType"

const (
	defaultSheet = "Sheet1"
	columnWidth  = 18
	headerColor  = "#4472C4"
	summarySheet = "Summary"
	changesSheet = "Shift Changes"
	datasetSheet = "Data"
	maxSheetName = 31
)

// Option adjusts a records export.
type Option func(*recordsOptions)

type recordsOptions struct {
	issueType bool
}

// WithIssueType appends the Classify label of each row as IssueType.
func WithIssueType() Option {
	return func(o *recordsOptions) { o.issueType = true }
}

// workbook wraps an excelize file with a single styled sheet.
type workbook struct {
	f     *excelize.File
	sheet string
}

func newWorkbook(sheet string) (*workbook, error) {
	sheet = sheetName(sheet)
	f := excelize.NewFile()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheet != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("delete default sheet: %w", err)
		}
	}
	return &workbook{f: f, sheet: sheet}, nil
}

func (wb *workbook) writeHeader(headers []string) error {
	style, err := wb.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{headerColor},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := wb.f.SetCellValue(wb.sheet, cell, h); err != nil {
			return err
		}
		if err := wb.f.SetCellStyle(wb.sheet, cell, cell, style); err != nil {
			return err
		}
	}

	if len(headers) > 0 {
		last, err := excelize.ColumnNumberToName(len(headers))
		if err != nil {
			return err
		}
		if err := wb.f.SetColWidth(wb.sheet, "A", last, columnWidth); err != nil {
			return err
		}
	}
	return nil
}

// writeRow writes values to the given 1-based row. Nil values leave the
// cell empty.
func (wb *workbook) writeRow(row int, values []any) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := wb.f.SetCellValue(wb.sheet, cell, v); err != nil {
			return fmt.Errorf("write %s: %w", cell, err)
		}
	}
	return nil
}

func (wb *workbook) writeTo(w io.Writer) error {
	defer wb.f.Close()
	if err := wb.f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// RecordsXLSX writes records as a single-sheet workbook. When columns is
// empty the header is the union of the records' columns in first-seen
// order.
func RecordsXLSX(w io.Writer, sheet string, columns []string, records []core.Record, opts ...Option) error {
	var o recordsOptions
	for _, opt := range opts {
		opt(&o)
	}
	if len(columns) == 0 {
		columns = ColumnsOf(records)
	}
	if sheet == "" {
		sheet = datasetSheet
	}

	headers := columns
	if o.issueType {
		headers = append(append([]string{}, columns...), IssueTypeColumn)
	}

	wb, err := newWorkbook(sheet)
	if err != nil {
		return err
	}
	if err := wb.writeHeader(headers); err != nil {
		wb.f.Close()
		return err
	}

	values := make([]any, len(headers))
	for i, r := range records {
		for j, col := range columns {
			values[j] = cellValue(r.Get(col))
		}
		if o.issueType {
			values[len(columns)] = string(core.Classify(r))
		}
		if err := wb.writeRow(i+2, values); err != nil {
			wb.f.Close()
			return err
		}
	}
	return wb.writeTo(w)
}

// ChangesXLSX writes reconciliation changes as a workbook.
func ChangesXLSX(w io.Writer, changes []core.ChangeRecord) error {
	wb, err := newWorkbook(changesSheet)
	if err != nil {
		return err
	}
	if err := wb.writeHeader(changeHeaders); err != nil {
		wb.f.Close()
		return err
	}
	for i, c := range changes {
		if err := wb.writeRow(i+2, changeValues(c)); err != nil {
			wb.f.Close()
			return err
		}
	}
	return wb.writeTo(w)
}

var summaryHeaders = []string{"Category", "Issues", "Quantity", "Age Over Threshold"}

// SummaryXLSX writes one row per dashboard category followed by a total row.
func SummaryXLSX(w io.Writer, a core.AnalysisResult) error {
	wb, err := newWorkbook(summarySheet)
	if err != nil {
		return err
	}
	if err := wb.writeHeader(summaryHeaders); err != nil {
		wb.f.Close()
		return err
	}

	rows := SummaryRows(a)
	for i, r := range rows {
		values := []any{r.Category, r.Issues, r.Quantity, nil}
		if r.AgeOverThreshold != nil {
			values[3] = *r.AgeOverThreshold
		}
		if err := wb.writeRow(i+2, values); err != nil {
			wb.f.Close()
			return err
		}
	}
	total := []any{"Total", a.TotalIssues, a.TotalQuantity}
	if err := wb.writeRow(len(rows)+2, total); err != nil {
		wb.f.Close()
		return err
	}
	return wb.writeTo(w)
}

// SummaryRow is one line of the dashboard summary table.
type SummaryRow struct {
	Category         string  `json:"category" yaml:"category"`
	Issues           int     `json:"issues" yaml:"issues"`
	Quantity         float64 `json:"quantity" yaml:"quantity"`
	AgeOverThreshold *int    `json:"ageOverThreshold,omitempty" yaml:"ageOverThreshold,omitempty"`
}

// SummaryRows flattens an analysis into summary lines in dashboard order.
func SummaryRows(a core.AnalysisResult) []SummaryRow {
	aged := func(n int) *int { return &n }
	return []SummaryRow{
		{Category: string(core.CategoryCRET), Issues: a.CRET.Count, Quantity: a.CRET.Quantity},
		{Category: string(core.CategoryFCReceive), Issues: a.FCReceive.Count, Quantity: a.FCReceive.Quantity, AgeOverThreshold: aged(a.FCReceive.AgeOverThreshold)},
		{Category: string(core.CategoryFCActionable), Issues: a.FCActionable.Count, Quantity: a.FCActionable.Quantity, AgeOverThreshold: aged(a.FCActionable.AgeOverThreshold)},
		{Category: string(core.CategoryMFI), Issues: a.MFI.Count, Quantity: a.MFI.Quantity, AgeOverThreshold: aged(a.MFI.AgeOverThreshold)},
		{Category: string(core.CategoryRBSPSAS), Issues: a.RBSPSAS.Count, Quantity: a.RBSPSAS.Quantity},
		{Category: string(core.CategoryBinCheck), Issues: a.BinCheck.Count, Quantity: a.BinCheck.Quantity},
		{Category: string(core.CategoryOthers), Issues: a.Others.Count, Quantity: a.Others.Quantity},
	}
}

// ColumnsOf returns the union of the records' columns in first-seen order.
func ColumnsOf(records []core.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		for _, col := range r.Columns() {
			if !seen[col] {
				seen[col] = true
				out = append(out, col)
			}
		}
	}
	return out
}

func cellValue(c core.Cell) any {
	if c.Kind == core.CellNumber {
		if f, ok := c.Number(); ok && !isInf(f) {
			return f
		}
		return c.String()
	}
	return c.Value()
}

// sheetName trims a name to the spreadsheet limit and drops characters
// excelize rejects.
func sheetName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
	}
	if len(out) > maxSheetName {
		out = out[:maxSheetName]
	}
	if len(out) == 0 {
		return datasetSheet
	}
	return string(out)
}
