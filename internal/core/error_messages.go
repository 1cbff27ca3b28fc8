// error_messages.go maps internal errors to coded, user-facing messages.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the upload size limit
//	          Action: Export a smaller date range or split the file
//	          Patterns: "file too large"
//
//	FILE002 - Unsupported format: File is not a CSV or Excel workbook
//	          Action: Upload a .csv, .xlsx or .xlsm export
//	          Patterns: "unsupported file format", "invalid csv", "invalid spreadsheet"
//
//	FILE004 - No file: No file was selected
//	          Action: Please select a file to upload
//	          Patterns: "no file provided"
//
//	FILE005 - Empty file: The uploaded file is empty
//	          Action: Please upload a file with a header row
//	          Patterns: "empty file"
//
// # Snapshot Errors (SNAP001-SNAP099)
//
//	SNAP001 - Snapshot not found: The uploaded file is no longer available
//	          Action: Upload the file again
//	          Patterns: "snapshot not found"
//
//	SNAP002 - Invalid role: Snapshot role must be single, start or end
//	          Action: Choose the start or end shift slot
//	          Patterns: "invalid snapshot role"
//
// # Bucket Errors (BKT001-BKT099)
//
//	BKT001 - Unknown bucket: The requested dataset does not exist
//	         Action: Pick one of the datasets listed on the dashboard
//	         Patterns: "unknown bucket"
//
// # Settings Errors (CFG001-CFG099)
//
//	CFG001 - Invalid thresholds: Age thresholds must be zero or more
//	         Action: Correct the settings and save again
//	         Patterns: "invalid thresholds"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many uploads in progress
//	         Action: Please wait a moment and try again
//	         Patterns: "too many uploads"
//
//	UPL004 - Request cancelled: Request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
//	UPL005 - Request timeout: Request timed out
//	         Action: Try uploading a smaller file or check your connection
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Action: Please wait a moment before trying again
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.

package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgUnsupportedFormat = UserMessage{
		Message: "File is not a CSV or Excel workbook",
		Action:  "Upload a .csv, .xlsx or .xlsm export",
		Code:    "FILE002",
	}
	msgTooManyUploads = UserMessage{
		Message: "System is busy processing other uploads",
		Action:  "Please wait a moment and try again",
		Code:    "UPL002",
	}
)

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE005)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the upload size limit",
			Action:  "Export a smaller date range or split the file",
			Code:    "FILE001",
		},
	},
	{pattern: "unsupported file format", msg: msgUnsupportedFormat},
	{pattern: "invalid csv", msg: msgUnsupportedFormat},
	{pattern: "invalid spreadsheet", msg: msgUnsupportedFormat},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Please upload a file with a header row",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Snapshot, bucket and settings errors
	// =========================================================================
	{
		pattern: "snapshot not found",
		msg: UserMessage{
			Message: "The uploaded file is no longer available",
			Action:  "Upload the file again",
			Code:    "SNAP001",
		},
	},
	{
		pattern: "invalid snapshot role",
		msg: UserMessage{
			Message: "Snapshot role must be single, start or end",
			Action:  "Choose the start or end shift slot",
			Code:    "SNAP002",
		},
	},
	{
		pattern: "unknown bucket",
		msg: UserMessage{
			Message: "The requested dataset does not exist",
			Action:  "Pick one of the datasets listed on the dashboard",
			Code:    "BKT001",
		},
	},
	{
		pattern: "invalid thresholds",
		msg: UserMessage{
			Message: "Age thresholds must be zero or more",
			Action:  "Correct the settings and save again",
			Code:    "CFG001",
		},
	},

	// =========================================================================
	// Upload Errors (UPL002-UPL005)
	// =========================================================================
	{pattern: "too many uploads", msg: msgTooManyUploads},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try uploading a smaller file or check your connection",
			Code:    "UPL005",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first case-insensitive pattern match, or ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than
// falling back to ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
