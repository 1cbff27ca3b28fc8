package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/JonMunkholm/ISS/internal/core"
)

var changeHeaders = []string{
	"Key",
	"Item",
	"Title",
	"Issue Type",
	"Start Type",
	"End Type",
	"Change",
	"Start Qty",
	"End Qty",
	"Qty Delta",
	"Start Status",
	"End Status",
}

func changeValues(c core.ChangeRecord) []any {
	return []any{
		c.Key,
		c.Item,
		c.Title,
		c.IssueType,
		c.StartIssueType,
		c.EndIssueType,
		string(c.ChangeType),
		c.StartQty,
		c.EndQty,
		c.QtyDelta,
		c.StartStatus,
		c.EndStatus,
	}
}

// ChangesCSV writes reconciliation changes as CSV with a header row.
func ChangesCSV(w io.Writer, changes []core.ChangeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(changeHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(changeHeaders))
	for _, c := range changes {
		for i, v := range changeValues(c) {
			switch x := v.(type) {
			case float64:
				row[i] = formatFloat(x)
			case string:
				row[i] = x
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write change %s: %w", c.Key, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isInf(f float64) bool {
	return math.IsInf(f, 0)
}
