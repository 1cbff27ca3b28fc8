package core

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/JonMunkholm/ISS/internal/ingest"
	"github.com/brianvoe/gofakeit/v6"
)

// ============================================================================
// Fixtures
// ============================================================================

var (
	benchTitles = []string{
		"Andon Cord pulled", "Bin Check Request on P-1-A", "CRET inspection",
		"Damaged unit", "Quantity mismatch", "Missing label",
	}
	benchItems = []string{
		"Widget", "C-Return", "FBA Missing From Inbound", "Customer Return Box",
		"PSAS Kit", "Gadget",
	}
	benchReasons = []string{
		"", "FC Receive", "Requester Information / FC Actionable", "Vendor",
	}
	benchStatuses = []string{"Open", "Work in Progress", "Resolved", "Pending"}
)

// generateRows builds a header and n random issue rows from a fixed seed.
func generateRows(n int, seed int64) ([]string, [][]string) {
	faker := gofakeit.New(seed)
	header := []string{
		FieldTitle, FieldItem, FieldIssueURL, FieldQuantity,
		FieldStatus, FieldAge, FieldPendingReason, FieldPhysicalLocation,
	}
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{
			faker.RandomString(benchTitles),
			faker.RandomString(benchItems),
			"https://issues.example.com/" + faker.UUID(),
			strconv.Itoa(faker.Number(0, 50)),
			faker.RandomString(benchStatuses),
			strconv.Itoa(faker.Number(0, 60)),
			faker.RandomString(benchReasons),
			faker.LetterN(2) + "-" + strconv.Itoa(faker.Number(1, 99)),
		}
	}
	return header, rows
}

func generateRecords(n int, seed int64) []Record {
	header, rows := generateRows(n, seed)
	return NewTable(header, rows).Records
}

// mutate returns a copy of rows with roughly a third of quantities and
// statuses changed, some rows dropped and some added.
func mutate(rows [][]string, seed int64) [][]string {
	faker := gofakeit.New(seed)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if faker.Number(0, 9) == 0 {
			continue
		}
		next := append([]string(nil), row...)
		if faker.Number(0, 2) == 0 {
			next[3] = strconv.Itoa(faker.Number(0, 50))
			next[4] = faker.RandomString(benchStatuses)
		}
		out = append(out, next)
	}
	_, added := generateRows(len(rows)/10, seed+1)
	return append(out, added...)
}

func generateCSV(n int) []byte {
	header, rows := generateRows(n, 1)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	return buf.Bytes()
}

// ============================================================================
// Classification and Aggregation
// ============================================================================

func BenchmarkClassify(b *testing.B) {
	records := generateRecords(1000, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, r := range records {
			Classify(r)
		}
	}
}

func BenchmarkAggregate(b *testing.B) {
	for _, n := range []int{1000, 10000} {
		records := generateRecords(n, 1)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Aggregate(records, DefaultThresholds())
			}
		})
	}
}

func BenchmarkBreakdown(b *testing.B) {
	records := generateRecords(10000, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Breakdown(records)
	}
}

// ============================================================================
// Reconciliation
// ============================================================================

func BenchmarkDiff(b *testing.B) {
	for _, n := range []int{1000, 10000} {
		header, rows := generateRows(n, 1)
		start := NewTable(header, rows).Records
		end := NewTable(header, mutate(rows, 2)).Records
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				NewComparison(start, end)
			}
		})
	}
}

func BenchmarkBuildKey(b *testing.B) {
	records := generateRecords(1000, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, r := range records {
			BuildKey(r)
		}
	}
}

// ============================================================================
// Ingest and Explore
// ============================================================================

func BenchmarkInferCell(b *testing.B) {
	values := []string{"", "12", "-4.5", "1e3", "Widget", "  7 ", "NaN"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, v := range values {
			InferCell(v)
		}
	}
}

func BenchmarkIngestCSV(b *testing.B) {
	data := generateCSV(10000)

	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sheet, err := ingest.ReadCSV(bytes.NewReader(data))
		if err != nil {
			b.Fatal(err)
		}
		NewTable(sheet.Columns, sheet.Rows)
	}
}

func BenchmarkExplore(b *testing.B) {
	records := generateRecords(10000, 1)
	q := ExploreQuery{Search: "widget", SortColumn: FieldAge, SortDir: SortDesc}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Explore(records, q)
	}
}

func BenchmarkAggregateParallel(b *testing.B) {
	records := generateRecords(1000, 1)

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			Aggregate(records, DefaultThresholds())
		}
	})
}
