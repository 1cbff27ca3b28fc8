package core

import "strings"

// RBSCatalog lists the Item substrings that mark an RBS/PSAS issue.
// Matching is case-insensitive.
var RBSCatalog = []string{
	"Add/Remove Expiration/Food Flag",
	"Barcode links multiple ASIN",
	"Barcode links wrong item",
	"Barcode not linked",
	"Binding Update",
	"Binding Update / Item Not in Catalog",
	"Detail Page Issue",
	"Expiration Date Issue",
	"Image Update",
	"Item Not In Catalog",
	"No PO Found",
	"No PO Found - No Problem Slip",
	"Not On PO",
	"Title Update",
	"Vendor Compliance",
}

var rbsCatalogLower = func() []string {
	out := make([]string, len(RBSCatalog))
	for i, s := range RBSCatalog {
		out[i] = strings.ToLower(s)
	}
	return out
}()

// lower returns the lower-cased text view of a cell.
func lower(c Cell) string {
	return strings.ToLower(c.Text())
}

// IsCRET reports whether the record is a customer return.
func IsCRET(r Record) bool {
	item := lower(r.Item)
	return strings.Contains(lower(r.Title), "cret") ||
		strings.Contains(item, "c-return") ||
		strings.Contains(item, "customer return") ||
		strings.Contains(lower(r.PhysicalLocation), "tscret")
}

// IsFCReceive reports whether the pending reason is an FC receive.
func IsFCReceive(r Record) bool {
	return strings.Contains(lower(r.PendingReason), "fc receive")
}

// IsFCActionable reports whether the pending reason names both the
// requester information and FC actionable states.
func IsFCActionable(r Record) bool {
	reason := lower(r.PendingReason)
	return strings.Contains(reason, "requester information") &&
		strings.Contains(reason, "fc actionable")
}

// IsMFI reports whether the item is an FBA missing from inbound issue.
func IsMFI(r Record) bool {
	return strings.Contains(lower(r.Item), "fba missing from inbound")
}

// IsAndonCord reports whether the title names an andon cord.
func IsAndonCord(r Record) bool {
	return strings.Contains(lower(r.Title), "andon cord")
}

// IsBinCheckRequest reports whether the title is a bin check request.
func IsBinCheckRequest(r Record) bool {
	return strings.Contains(lower(r.Title), "bin check request on")
}

// IsBinCheck reports whether the record is either Bin Check flavour.
func IsBinCheck(r Record) bool {
	return IsAndonCord(r) || IsBinCheckRequest(r)
}

// IsRBS reports whether the item matches any RBS/PSAS catalog entry.
func IsRBS(r Record) bool {
	item := lower(r.Item)
	for _, entry := range rbsCatalogLower {
		if strings.Contains(item, entry) {
			return true
		}
	}
	return false
}

// IsRBSPending reports whether the record is an RBS/PSAS issue that is not
// already waiting on an FC receive or FC actionable step.
func IsRBSPending(r Record) bool {
	return IsRBS(r) && !IsFCReceive(r) && !IsFCActionable(r)
}

// Rule is one step of the classification chain.
type Rule struct {
	Category    Category
	Description string
	Match       func(Record) bool
}

// rules is evaluated top to bottom; the first match wins.
// Reordering it changes classification results.
var rules = []Rule{
	{CategoryCRET, `Title contains "cret", Item contains "c-return" or "customer return", or PhysicalLocation contains "tscret"`, IsCRET},
	{CategoryFCReceive, `PendingReason contains "fc receive"`, IsFCReceive},
	{CategoryFCActionable, `PendingReason contains "requester information" and "fc actionable"`, IsFCActionable},
	{CategoryMFI, `Item contains "fba missing from inbound"`, IsMFI},
	{CategoryBinCheck, `Title contains "andon cord" or "bin check request on"`, IsBinCheck},
	{CategoryRBSPSAS, `Item contains an RBS/PSAS catalog entry`, IsRBS},
}

// Rules returns the classification chain in evaluation order, ending with
// the Others fallback.
func Rules() []Rule {
	out := make([]Rule, 0, len(rules)+1)
	out = append(out, rules...)
	out = append(out, Rule{
		Category:    CategoryOthers,
		Description: "no other rule matched",
		Match:       func(Record) bool { return true },
	})
	return out
}

// Classify returns the single category label of a record.
func Classify(r Record) Category {
	for _, rule := range rules {
		if rule.Match(r) {
			return rule.Category
		}
	}
	return CategoryOthers
}

// categoryRank returns the rule position of a category, or len(Categories)
// for an unknown label.
func categoryRank(c Category) int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return len(Categories)
}
