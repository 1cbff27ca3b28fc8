package core

import (
	"sort"
	"strings"
)

// ChartData is everything the dashboard charts plot.
type ChartData struct {
	Categories []CategoryBar `json:"category"`
	Pie        []PieSlice    `json:"pie"`
	Ages       []AgeBucket   `json:"ageDist"`
	Statuses   []StatusCount `json:"statusDist"`
}

// CategoryBar is one bar of the category chart.
type CategoryBar struct {
	Name     string  `json:"name"`
	Issues   int     `json:"issues"`
	Quantity float64 `json:"quantity"`
}

// PieSlice is one non-empty category of the pie chart.
type PieSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// AgeBucket is one bar of the age histogram.
type AgeBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// StatusCount is one entry of the status distribution.
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ageRanges are the histogram buckets, each with an inclusive upper bound.
var ageRanges = []struct {
	label string
	max   float64
}{
	{"0-2", 2},
	{"3-5", 5},
	{"6-10", 10},
	{"11-20", 20},
	{"21-30", 30},
}

const (
	ageOverflowLabel = "30+"
	unknownStatus    = "Unknown"
	topStatuses      = 10
)

// BuildCharts derives chart series from an analysis and the rows it was
// computed from. MFI and Bin Check bars carry no quantity.
func BuildCharts(a AnalysisResult, records []Record) ChartData {
	bars := []CategoryBar{
		{Name: string(CategoryCRET), Issues: a.CRET.Count, Quantity: a.CRET.Quantity},
		{Name: string(CategoryFCReceive), Issues: a.FCReceive.Count, Quantity: a.FCReceive.Quantity},
		{Name: string(CategoryFCActionable), Issues: a.FCActionable.Count, Quantity: a.FCActionable.Quantity},
		{Name: string(CategoryMFI), Issues: a.MFI.Count},
		{Name: string(CategoryRBSPSAS), Issues: a.RBSPSAS.Count, Quantity: a.RBSPSAS.Quantity},
		{Name: string(CategoryBinCheck), Issues: a.BinCheck.Count},
		{Name: string(CategoryOthers), Issues: a.Others.Count, Quantity: a.Others.Quantity},
	}

	pie := make([]PieSlice, 0, len(bars))
	for _, b := range bars {
		if b.Issues > 0 {
			pie = append(pie, PieSlice{Name: b.Name, Value: b.Issues})
		}
	}

	return ChartData{
		Categories: bars,
		Pie:        pie,
		Ages:       ageHistogram(records),
		Statuses:   statusDistribution(records),
	}
}

func ageHistogram(records []Record) []AgeBucket {
	out := make([]AgeBucket, len(ageRanges)+1)
	for i, r := range ageRanges {
		out[i].Range = r.label
	}
	out[len(ageRanges)].Range = ageOverflowLabel

	for _, r := range records {
		age, ok := r.Age.Number()
		if !ok {
			continue
		}
		idx := len(ageRanges)
		for i, ar := range ageRanges {
			if age <= ar.max {
				idx = i
				break
			}
		}
		out[idx].Count++
	}
	return out
}

// statusDistribution returns the most common statuses. Blank statuses
// count as Unknown; whitespace-only ones are skipped.
func statusDistribution(records []Record) []StatusCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		status := r.Status.Text()
		if status == "" {
			status = unknownStatus
		}
		status = strings.TrimSpace(status)
		if status == "" {
			continue
		}
		if _, ok := counts[status]; !ok {
			order = append(order, status)
		}
		counts[status]++
	}

	out := make([]StatusCount, 0, len(order))
	for _, s := range order {
		out = append(out, StatusCount{Name: s, Value: counts[s]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	if len(out) > topStatuses {
		out = out[:topStatuses]
	}
	return out
}
