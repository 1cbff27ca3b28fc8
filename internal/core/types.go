package core

import "time"

// Recognized field names. Matching is exact and case-sensitive.
const (
	FieldTitle            = "Title"
	FieldItem             = "Item"
	FieldPhysicalLocation = "PhysicalLocation"
	FieldPendingReason    = "PendingReason"
	FieldIssueURL         = "IssueUrl"
	FieldQuantity         = "Quantity"
	FieldStatus           = "Status"
	FieldAge              = "Age"
)

// RecognizedFields lists every field the core interprets, in display order.
var RecognizedFields = []string{
	FieldTitle,
	FieldItem,
	FieldPhysicalLocation,
	FieldPendingReason,
	FieldIssueURL,
	FieldQuantity,
	FieldStatus,
	FieldAge,
}

// CellKind is the dynamic type of a Cell.
type CellKind int

const (
	CellAbsent CellKind = iota
	CellString
	CellNumber
)

// Cell is one untyped scalar read from an ingested table.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
}

// Category is the single label assigned to a record by Classify.
type Category string

const (
	CategoryCRET         Category = "CRET"
	CategoryFCReceive    Category = "FC Receive"
	CategoryFCActionable Category = "FC Actionable"
	CategoryMFI          Category = "MFI"
	CategoryBinCheck     Category = "Bin Check"
	CategoryRBSPSAS      Category = "RBS/PSAS"
	CategoryOthers       Category = "Others"
)

// Categories lists every category in rule priority order.
var Categories = []Category{
	CategoryCRET,
	CategoryFCReceive,
	CategoryFCActionable,
	CategoryMFI,
	CategoryBinCheck,
	CategoryRBSPSAS,
	CategoryOthers,
}

// ThresholdsConfig holds the age limits used for breach counting.
type ThresholdsConfig struct {
	FCReceiveAgeThreshold    int `json:"fcReceiveAgeThreshold" yaml:"fc_receive_age_threshold"`
	FCActionableAgeThreshold int `json:"fcActionableAgeThreshold" yaml:"fc_actionable_age_threshold"`
	MFIAgeThreshold          int `json:"mfiAgeThreshold" yaml:"mfi_age_threshold"`
}

// DefaultThresholds returns the thresholds used when none are configured.
func DefaultThresholds() ThresholdsConfig {
	return ThresholdsConfig{
		FCReceiveAgeThreshold:    10,
		FCActionableAgeThreshold: 10,
		MFIAgeThreshold:          5,
	}
}

// Bucket is the count/quantity summary of one dashboard dataset.
type Bucket struct {
	Count    int      `json:"count"`
	Quantity float64  `json:"quantity"`
	Data     []Record `json:"data"`
}

// AgedBucket is a Bucket that also tracks age threshold breaches.
type AgedBucket struct {
	Bucket
	AgeOverThreshold int `json:"ageOverThreshold"`
}

// MFIBucket adds the work-in-progress counter to an aged bucket.
type MFIBucket struct {
	AgedBucket
	WorkInProgress int `json:"workInProgress"`
}

// BinCheckBucket splits Bin Check issues by title flavour.
// Count is the sum of both sub-counts and Data is their concatenation.
type BinCheckBucket struct {
	Bucket
	AndonCord       Bucket `json:"andonCord"`
	BinCheckRequest Bucket `json:"binCheckRequest"`
}

// AnalysisResult is the aggregate snapshot of one record collection.
type AnalysisResult struct {
	TotalIssues   int            `json:"totalIssues"`
	TotalQuantity float64        `json:"totalQuantity"`
	CRET          Bucket         `json:"cret"`
	FCReceive     AgedBucket     `json:"fcReceive"`
	FCActionable  AgedBucket     `json:"fcActionable"`
	MFI           MFIBucket      `json:"mfi"`
	RBSPSAS       Bucket         `json:"pendingRbsPsas"`
	BinCheck      BinCheckBucket `json:"binCheck"`
	Others        Bucket         `json:"others"`
}

// ChangeType tags a ChangeRecord.
type ChangeType string

const (
	ChangeAdded         ChangeType = "added"
	ChangeRemoved       ChangeType = "removed"
	ChangeQtyIncreased  ChangeType = "qty_increased"
	ChangeQtyDecreased  ChangeType = "qty_decreased"
	ChangeStatusChanged ChangeType = "status_changed"
	ChangeTypeChanged   ChangeType = "type_changed"
)

// ChangeTypes lists every change kind in report order.
var ChangeTypes = []ChangeType{
	ChangeAdded,
	ChangeRemoved,
	ChangeQtyIncreased,
	ChangeQtyDecreased,
	ChangeStatusChanged,
	ChangeTypeChanged,
}

// Absent marks a side of a change record that has no record.
const Absent = "-"

// ChangeRecord is one observed change between a start and an end snapshot.
type ChangeRecord struct {
	Key            string     `json:"key" yaml:"key"`
	Item           string     `json:"item" yaml:"item"`
	Title          string     `json:"title" yaml:"title"`
	IssueType      string     `json:"issueType" yaml:"issueType"`
	StartIssueType string     `json:"startIssueType" yaml:"startIssueType"`
	EndIssueType   string     `json:"endIssueType" yaml:"endIssueType"`
	ChangeType     ChangeType `json:"changeType" yaml:"changeType"`
	StartQty       float64    `json:"startQty" yaml:"startQty"`
	EndQty         float64    `json:"endQty" yaml:"endQty"`
	QtyDelta       float64    `json:"qtyDelta" yaml:"qtyDelta"`
	StartStatus    string     `json:"startStatus" yaml:"startStatus"`
	EndStatus      string     `json:"endStatus" yaml:"endStatus"`
}

// SnapshotRole says which side of a reconciliation a snapshot belongs to.
type SnapshotRole string

const (
	RoleSingle SnapshotRole = "single"
	RoleStart  SnapshotRole = "start"
	RoleEnd    SnapshotRole = "end"
)

// Table is an ingested record collection with its header order.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"-"`
}

// Snapshot is an ingested table held by the Service until it expires.
type Snapshot struct {
	ID         string              `json:"id"`
	Role       SnapshotRole        `json:"role"`
	FileName   string              `json:"fileName"`
	UploadedAt time.Time           `json:"uploadedAt"`
	UploadedBy string              `json:"uploadedBy,omitempty"`
	ExpiresAt  time.Time           `json:"expiresAt"`
	Columns    []string            `json:"columns"`
	RowCount   int                 `json:"rowCount"`
	Warnings   []ValidationWarning `json:"warnings,omitempty"`

	table *Table
}

// Records returns the snapshot rows. Callers must not modify them.
func (s *Snapshot) Records() []Record {
	if s.table == nil {
		return nil
	}
	return s.table.Records
}

// Expired reports whether the snapshot has outlived its TTL at now.
func (s *Snapshot) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
