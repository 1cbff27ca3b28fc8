package core

import (
	"strings"

	"golang.org/x/sync/errgroup"
)

// keyedRecords is an identity map that remembers first-seen key order.
// A later record with the same key replaces the earlier one in place.
type keyedRecords struct {
	order []string
	byKey map[string]Record
}

func indexRecords(records []Record) keyedRecords {
	k := keyedRecords{
		order: make([]string, 0, len(records)),
		byKey: make(map[string]Record, len(records)),
	}
	for _, r := range records {
		key := BuildKey(r)
		if _, seen := k.byKey[key]; !seen {
			k.order = append(k.order, key)
		}
		k.byKey[key] = r
	}
	return k
}

// Diff reports every change between a start and an end snapshot.
//
// Output follows the key union order: start keys in start order, then
// keys only present at the end in end order. A matched pair is checked
// for quantity, status and category changes independently and may yield
// up to three records.
func Diff(start, end []Record) []ChangeRecord {
	var startIdx, endIdx keyedRecords

	var g errgroup.Group
	g.Go(func() error {
		startIdx = indexRecords(start)
		return nil
	})
	g.Go(func() error {
		endIdx = indexRecords(end)
		return nil
	})
	_ = g.Wait()

	keys := make([]string, 0, len(startIdx.order)+len(endIdx.order))
	keys = append(keys, startIdx.order...)
	for _, key := range endIdx.order {
		if _, ok := startIdx.byKey[key]; !ok {
			keys = append(keys, key)
		}
	}

	var changes []ChangeRecord
	for _, key := range keys {
		s, inStart := startIdx.byKey[key]
		e, inEnd := endIdx.byKey[key]

		switch {
		case !inStart && inEnd:
			changes = append(changes, addedChange(key, e))
		case inStart && !inEnd:
			changes = append(changes, removedChange(key, s))
		default:
			changes = append(changes, pairChanges(key, s, e)...)
		}
	}
	return changes
}

func addedChange(key string, e Record) ChangeRecord {
	endType := string(Classify(e))
	qty := e.Quantity.Quantity()
	return ChangeRecord{
		Key:            key,
		Item:           e.Item.Text(),
		Title:          e.Title.Text(),
		IssueType:      endType,
		StartIssueType: Absent,
		EndIssueType:   endType,
		ChangeType:     ChangeAdded,
		StartQty:       0,
		EndQty:         qty,
		QtyDelta:       qty,
		StartStatus:    Absent,
		EndStatus:      e.Status.Text(),
	}
}

func removedChange(key string, s Record) ChangeRecord {
	startType := string(Classify(s))
	qty := s.Quantity.Quantity()
	return ChangeRecord{
		Key:            key,
		Item:           s.Item.Text(),
		Title:          s.Title.Text(),
		IssueType:      startType,
		StartIssueType: startType,
		EndIssueType:   Absent,
		ChangeType:     ChangeRemoved,
		StartQty:       qty,
		EndQty:         0,
		QtyDelta:       -qty,
		StartStatus:    s.Status.Text(),
		EndStatus:      Absent,
	}
}

// pairChanges compares a matched pair. Display fields come from the end record.
func pairChanges(key string, s, e Record) []ChangeRecord {
	startType := string(Classify(s))
	endType := string(Classify(e))
	startQty := s.Quantity.Quantity()
	endQty := e.Quantity.Quantity()
	startStatus := s.Status.Text()
	endStatus := e.Status.Text()

	base := ChangeRecord{
		Key:            key,
		Item:           e.Item.Text(),
		Title:          e.Title.Text(),
		IssueType:      endType,
		StartIssueType: startType,
		EndIssueType:   endType,
		StartQty:       startQty,
		EndQty:         endQty,
		QtyDelta:       endQty - startQty,
		StartStatus:    startStatus,
		EndStatus:      endStatus,
	}

	var out []ChangeRecord
	switch {
	case endQty > startQty:
		c := base
		c.ChangeType = ChangeQtyIncreased
		out = append(out, c)
	case endQty < startQty:
		c := base
		c.ChangeType = ChangeQtyDecreased
		out = append(out, c)
	}

	if strings.ToLower(startStatus) != strings.ToLower(endStatus) {
		c := base
		c.Key = key + statusKeySuffix
		c.ChangeType = ChangeStatusChanged
		out = append(out, c)
	}

	if startType != endType {
		c := base
		c.Key = key + typeKeySuffix
		c.ChangeType = ChangeTypeChanged
		out = append(out, c)
	}
	return out
}
