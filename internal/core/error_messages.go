// Package core provides the analysis pipeline for the salaries dataset.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Error codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the configured size limit
//	          Action: Raise INPUT_MAX_FILE_SIZE or trim the file
//	          Patterns: "file too large"
//
//	FILE002 - Invalid CSV: File could not be parsed as delimited text
//	          Action: Check quoting and that every row uses the same delimiter
//	          Patterns: "invalid csv"
//
//	FILE003 - Is a directory: The input path is a directory
//	          Action: Pass the path of the CSV file itself
//	          Patterns: "is a directory"
//
//	FILE004 - No file: The input file does not exist
//	          Action: Check INPUT_PATH or the file argument
//	          Patterns: "no such file"
//
//	FILE005 - Empty file: The file has no header or no data rows
//	          Action: Provide a file with a header row and at least one record
//	          Patterns: "empty file"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid integer: A whole-number field holds something else
//	         Patterns: "invalid integer"
//
//	VAL002 - Invalid number: A numeric field holds something else
//	         Patterns: "invalid number"
//
//	VAL003 - Required field: A required field is empty
//	         Patterns: "empty required field"
//
//	VAL004 - Missing column: A required column is missing from the header
//	         Patterns: "missing required column"
//
//	VAL005 - Negative amount: A salary field is below zero
//	         Patterns: "negative amount"
//
//	VAL006 - Invalid enum: Value is not in the allowed list
//	         Patterns: "invalid enum"
//
// # Data Quality Errors (DQ001-DQ099)
//
//	DQ001 - Unknown category: An experience or employment code is not recognized
//	        Patterns: "unknown category"
//
//	DQ002 - Unknown country: A residence code is not an ISO-3166 alpha-2 code
//	        Patterns: "unknown country"
//
//	DQ003 - Malformed input: Any other structural problem with the file
//	        Patterns: "malformed input"
//
// # Hypothesis Errors (HYP001-HYP099)
//
//	HYP001 - Insufficient data: A cohort has no large or small company records
//	         Patterns: "insufficient data"
//
//	HYP002 - Division by zero: A cohort mean salary is zero
//	         Patterns: "division by zero"
//
// # Report Errors (RPT001-RPT099)
//
//	RPT001 - View not found: Patterns: "view not found"
//	RPT002 - Chart not found: Patterns: "chart not found"
//	RPT003 - No report: Patterns: "no report"
//	RPT004 - Request cancelled: Patterns: "context canceled"
//	RPT005 - Request timeout: Patterns: "context deadline exceeded"
//	RPT006 - Server busy: Patterns: "too many concurrent renders"
//	RPT007 - Rate limited: Patterns: "rate limit exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches.
//
// # Pattern Matching
//
// A DataError is mapped by its Kind, never by its text, since field values
// read from the file end up in Error(). Malformed input is split into the
// validation codes by the prefix of its Message. Any other error is matched
// case-insensitively against the pattern table using strings.Contains, and
// the first matching pattern wins.
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

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so order matters.
var errorPatterns = []errorPattern{
	// =========================================================================
	// File Errors (FILE001-FILE005)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the configured size limit",
			Action:  "Raise INPUT_MAX_FILE_SIZE or trim the file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File could not be parsed as delimited text",
			Action:  "Check quoting and that every row uses the same delimiter",
			Code:    "FILE002",
		},
	},
	{
		pattern: "is a directory",
		msg: UserMessage{
			Message: "The input path is a directory",
			Action:  "Pass the path of the CSV file itself",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The input file does not exist",
			Action:  "Check INPUT_PATH or the file argument",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file has no header or no data rows",
			Action:  "Provide a file with a header row and at least one record",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL006)
	// Raised by the row validator; the message carries line and field.
	// =========================================================================
	{
		pattern: "invalid integer",
		msg: UserMessage{
			Message: "A whole-number field holds something else",
			Action:  "Check work_year and remote_ratio on the reported line",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "A numeric field holds something else",
			Action:  "Check salary and salary_in_usd on the reported line",
			Code:    "VAL002",
		},
	},
	{
		pattern: "empty required field",
		msg: UserMessage{
			Message: "A required field is empty",
			Action:  "Fill in the field named in the error",
			Code:    "VAL003",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A required column is missing from the header",
			Action:  "Check the header row and that the file is semicolon-delimited",
			Code:    "VAL004",
		},
	},
	{
		pattern: "negative amount",
		msg: UserMessage{
			Message: "A salary field is below zero",
			Action:  "Check salary and salary_in_usd on the reported line",
			Code:    "VAL005",
		},
	},
	{
		pattern: "invalid enum",
		msg: UserMessage{
			Message: "Value is not in the allowed list",
			Action:  "Check the allowed values for this field",
			Code:    "VAL006",
		},
	},

	// =========================================================================
	// Data Quality Errors (DQ001-DQ003)
	// =========================================================================
	{
		pattern: "unknown category",
		msg: UserMessage{
			Message: "An experience or employment code is not recognized",
			Action:  "Use EN/MI/SE/EX for experience and PT/FT/CT/FL for employment type",
			Code:    "DQ001",
		},
	},
	{
		pattern: "unknown country",
		msg: UserMessage{
			Message: "A residence code is not an ISO-3166 alpha-2 code",
			Action:  "Correct the employee_residence value on the reported line",
			Code:    "DQ002",
		},
	},
	{
		pattern: "malformed input",
		msg: UserMessage{
			Message: "The file is malformed",
			Action:  "Check the line and field named in the error",
			Code:    "DQ003",
		},
	},

	// =========================================================================
	// Hypothesis Errors (HYP001-HYP002)
	// =========================================================================
	{
		pattern: "insufficient data",
		msg: UserMessage{
			Message: "Not enough fully remote records to compare company sizes",
			Action:  "Each cohort needs at least one large and one small company record",
			Code:    "HYP001",
		},
	},
	{
		pattern: "division by zero",
		msg: UserMessage{
			Message: "A cohort mean salary is zero",
			Action:  "Check salary_in_usd values of fully remote records",
			Code:    "HYP002",
		},
	},

	// =========================================================================
	// Report Errors (RPT001-RPT007)
	// =========================================================================
	{
		pattern: "view not found",
		msg: UserMessage{
			Message: "The requested view does not exist",
			Action:  "List available views at /api/views",
			Code:    "RPT001",
		},
	},
	{
		pattern: "chart not found",
		msg: UserMessage{
			Message: "The requested chart does not exist",
			Action:  "Use one of the chart names shown on the dashboard",
			Code:    "RPT002",
		},
	},
	{
		pattern: "no report",
		msg: UserMessage{
			Message: "No analysis has completed yet",
			Action:  "Wait for the analysis to finish and reload",
			Code:    "RPT003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "RPT004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try again with a smaller file",
			Code:    "RPT005",
		},
	},
	{
		pattern: "too many concurrent renders",
		msg: UserMessage{
			Message: "The server is busy rendering other reports",
			Action:  "Please retry in a few seconds",
			Code:    "RPT006",
		},
	},
	{
		pattern: "rate limit exceeded",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Wait a minute before retrying",
			Code:    "RPT007",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs for details",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
// Returns an empty UserMessage for nil errors.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if de, ok := AsDataError(err); ok {
		return dataErrorMessage(de)
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// kindCodes maps each DataError kind to its message code.
var kindCodes = map[ErrorKind]string{
	KindUnknownCategory:  "DQ001",
	KindUnknownCountry:   "DQ002",
	KindMalformedInput:   "DQ003",
	KindInsufficientData: "HYP001",
	KindDivisionByZero:   "HYP002",
}

// malformedCodes are the codes a malformed-input message may refine to.
var malformedCodes = []string{"FILE002", "VAL001", "VAL002", "VAL003", "VAL004", "VAL005", "VAL006"}

func dataErrorMessage(de *DataError) UserMessage {
	if de.Kind == KindMalformedInput {
		msg := strings.ToLower(de.Message)
		for _, code := range malformedCodes {
			ep := patternFor(code)
			if ep.pattern != "" && strings.HasPrefix(msg, ep.pattern) {
				return ep.msg
			}
		}
	}

	code, ok := kindCodes[de.Kind]
	if !ok {
		return defaultMessage
	}
	return patternFor(code).msg
}

func patternFor(code string) errorPattern {
	for _, ep := range errorPatterns {
		if ep.msg.Code == code {
			return ep
		}
	}
	return errorPattern{msg: defaultMessage}
}

// FormatUserError returns a formatted user-friendly error string.
// Format: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific code rather than the default.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	msg := MapError(err)
	return msg.Code != defaultMessage.Code
}

// UserError wraps a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError creates a UserError from a technical error.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
