package core

import "errors"

var (
	// ErrSnapshotNotFound is returned for unknown or expired snapshot IDs.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrUnknownBucket is returned when a bucket key is not registered.
	ErrUnknownBucket = errors.New("unknown bucket")

	// ErrInvalidRole is returned for a role other than single, start or end.
	ErrInvalidRole = errors.New("invalid snapshot role")

	// ErrInvalidThresholds is returned when a threshold is negative.
	ErrInvalidThresholds = errors.New("invalid thresholds")
)
