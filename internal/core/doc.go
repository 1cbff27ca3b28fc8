// Package core provides the classification, aggregation and shift
// reconciliation logic for ISS issue tables.
//
// The package has no transport dependencies. The web server, the CLI and
// tests all call the same functions.
//
// # Records
//
// A [Record] is one row of an issue export. Eight fields are recognized by
// exact name (Title, Item, PhysicalLocation, PendingReason, IssueUrl,
// Quantity, Status, Age); everything else rides along in Record.Extra for
// display and export. Cells are untyped: see [Cell.Text], [Cell.Number]
// and [Cell.Quantity] for the coercion rules.
//
// # Classification and buckets
//
// Two algorithms read the same substring predicates:
//
//   - [Classify] gives every record exactly one label using the ordered
//     rule chain returned by [Rules]. The first matching rule wins.
//   - [Aggregate] computes the dashboard buckets. Buckets overlap: a record
//     may count in FC Receive and MFI at once. Only CRET, split off first,
//     and Others, the complement of every other bucket, are exclusive.
//
// Buckets are exposed by key through the registry ([Register], [Get], [All]);
// package buckets registers the dashboard datasets.
//
// # Shift reconciliation
//
// [BuildKey] derives the identity used to match a record across two
// snapshots and [Diff] emits one [ChangeRecord] per observed change.
// Duplicate keys within one snapshot resolve last-write-wins.
//
// # Service
//
// [Service] keeps ingested snapshots in memory for a limited time, bounds
// concurrent parsing with an [IngestLimiter] and maps errors to user
// messages with [MapError].
package core
