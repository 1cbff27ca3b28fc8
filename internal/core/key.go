package core

import "strings"

// KeyDelimiter joins the fallback identity fields. It is assumed never to
// appear inside Item, Title or PendingReason; this is not checked.
const KeyDelimiter = "__"

// Suffixes that keep status and type change records individually addressable.
const (
	statusKeySuffix = KeyDelimiter + "status"
	typeKeySuffix   = KeyDelimiter + "type"
)

// BuildKey returns the identity used to match a record across snapshots:
// the trimmed IssueUrl when present, otherwise Item, Title and
// PendingReason trimmed and joined by KeyDelimiter.
func BuildKey(r Record) string {
	if url := strings.TrimSpace(r.IssueURL.Text()); url != "" {
		return url
	}
	return strings.Join([]string{
		strings.TrimSpace(r.Item.Text()),
		strings.TrimSpace(r.Title.Text()),
		strings.TrimSpace(r.PendingReason.Text()),
	}, KeyDelimiter)
}
