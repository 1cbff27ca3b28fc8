package core

import "strings"

// aggregate.go computes the dashboard buckets.
//
// Buckets are independent membership tests over the non-CRET rows, so a
// record may land in several of them. Only CRET (split off first) and
// Others (the complement of every other bucket) are exclusive. This is a
// different algorithm from Classify and the two must not be merged.

// statusWorkInProgress is the MFI status counted as work in progress.
const statusWorkInProgress = "work in progress"

// Aggregate computes the AnalysisResult of a record collection.
func Aggregate(records []Record, t ThresholdsConfig) AnalysisResult {
	var (
		cret, nonCret          []Record
		fcReceive, fcAction    []Record
		mfi, rbs, others       []Record
		andon, binCheckRequest []Record
	)

	for _, r := range records {
		if IsCRET(r) {
			cret = append(cret, r)
			continue
		}
		nonCret = append(nonCret, r)

		fcr := IsFCReceive(r)
		fca := IsFCActionable(r)
		isMFI := IsMFI(r)
		isAndon := IsAndonCord(r)
		isBCR := IsBinCheckRequest(r)
		isRBS := IsRBSPending(r)

		if fcr {
			fcReceive = append(fcReceive, r)
		}
		if fca {
			fcAction = append(fcAction, r)
		}
		if isMFI {
			mfi = append(mfi, r)
		}
		if isAndon {
			andon = append(andon, r)
		}
		if isBCR {
			binCheckRequest = append(binCheckRequest, r)
		}
		if isRBS {
			rbs = append(rbs, r)
		}
		if !fcr && !fca && !isMFI && !isAndon && !isBCR && !isRBS {
			others = append(others, r)
		}
	}

	total := newBucket(nonCret)
	result := AnalysisResult{
		TotalIssues:   total.Count,
		TotalQuantity: total.Quantity,
		CRET:          newBucket(cret),
		FCReceive:     newAgedBucket(fcReceive, t.FCReceiveAgeThreshold),
		FCActionable:  newAgedBucket(fcAction, t.FCActionableAgeThreshold),
		MFI: MFIBucket{
			AgedBucket:     newAgedBucket(mfi, t.MFIAgeThreshold),
			WorkInProgress: countWorkInProgress(mfi),
		},
		RBSPSAS: newBucket(rbs),
		Others:  newBucket(others),
	}

	result.BinCheck.AndonCord = newBucket(andon)
	result.BinCheck.BinCheckRequest = newBucket(binCheckRequest)
	all := make([]Record, 0, len(andon)+len(binCheckRequest))
	all = append(all, andon...)
	all = append(all, binCheckRequest...)
	result.BinCheck.Data = all
	result.BinCheck.Count = result.BinCheck.AndonCord.Count + result.BinCheck.BinCheckRequest.Count
	result.BinCheck.Quantity = result.BinCheck.AndonCord.Quantity + result.BinCheck.BinCheckRequest.Quantity

	return result
}

// newBucket counts rows with a non-blank IssueUrl and sums quantities.
// Data is never nil so empty buckets encode as [].
func newBucket(records []Record) Bucket {
	b := Bucket{Data: records}
	if b.Data == nil {
		b.Data = []Record{}
	}
	for _, r := range records {
		if HasIssueURL(r) {
			b.Count++
		}
		b.Quantity += r.Quantity.Quantity()
	}
	return b
}

func newAgedBucket(records []Record, threshold int) AgedBucket {
	return AgedBucket{
		Bucket:           newBucket(records),
		AgeOverThreshold: countAgeOver(records, threshold),
	}
}

// HasIssueURL reports whether the record's IssueUrl is non-blank.
func HasIssueURL(r Record) bool {
	return strings.TrimSpace(r.IssueURL.Text()) != ""
}

// countAgeOver counts rows whose numeric Age exceeds the threshold.
// Rows without a numeric Age never count.
func countAgeOver(records []Record, threshold int) int {
	n := 0
	for _, r := range records {
		if age, ok := r.Age.Number(); ok && age > float64(threshold) {
			n++
		}
	}
	return n
}

func countWorkInProgress(records []Record) int {
	n := 0
	for _, r := range records {
		if strings.ToLower(strings.TrimSpace(r.Status.Text())) == statusWorkInProgress {
			n++
		}
	}
	return n
}
