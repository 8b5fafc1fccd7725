package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigurationError indicates conflicting or missing constructor arguments
	ConfigurationError ErrorCode = "CONFIGURATION_ERROR"
	// ScopeViolation indicates a participant is illegal for the view's scope
	ScopeViolation ErrorCode = "SCOPE_VIOLATION"
	// NoSuchRelationship indicates no relationship exists between a pair in either direction
	NoSuchRelationship ErrorCode = "NO_SUCH_RELATIONSHIP"
	// AmbiguousRelationship indicates more than one relationship matches a step
	AmbiguousRelationship ErrorCode = "AMBIGUOUS_RELATIONSHIP"
	// TechnologyMismatch indicates no relationship matches the requested technology
	TechnologyMismatch ErrorCode = "TECHNOLOGY_MISMATCH"
	// DuplicateElement indicates an element id or sibling name is already taken
	DuplicateElement ErrorCode = "DUPLICATE_ELEMENT"
	// ElementNotFound indicates an element id could not be resolved
	ElementNotFound ErrorCode = "ELEMENT_NOT_FOUND"
	// ViewNotFound indicates no view has the requested key
	ViewNotFound ErrorCode = "VIEW_NOT_FOUND"
	// InvalidWorkspace indicates a workspace declaration could not be parsed or built
	InvalidWorkspace ErrorCode = "INVALID_WORKSPACE"
	// UnsupportedVersion indicates a schema version outside the supported range
	UnsupportedVersion ErrorCode = "UNSUPPORTED_VERSION"
	// InvalidFormat indicates an unknown document or output format
	InvalidFormat ErrorCode = "INVALID_FORMAT"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditWorkspace suggests changing the workspace declaration
	EditWorkspace FixActionType = "edit-workspace"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Description string        `json:"description,omitempty"`
}

// Error is a coded c4kit error. Messages are meant to be shown verbatim to users.
type Error struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// NewError creates a new Error with the default suggested fixes for its code
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Errorf creates a new Error with a formatted message and no cause
func Errorf(code ErrorCode, format string, args ...interface{}) *Error {
	return NewError(code, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether err's chain contains an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.cause
	}
	return false
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	AmbiguousRelationship: {
		{
			Type:        EditWorkspace,
			Description: "Add a technology to the step to pick one of the matching relationships",
		},
	},
	TechnologyMismatch: {
		{
			Type:        EditWorkspace,
			Description: "Use the technology declared on the relationship, or omit it",
		},
	},
	NoSuchRelationship: {
		{
			Type:        EditWorkspace,
			Description: "Declare the relationship in the model before using it in a view",
		},
	},
	ViewNotFound: {
		{
			Type:        RunCommand,
			Command:     "c4kit validate",
			Description: "List the views the workspace declares",
		},
	},
	InvalidWorkspace: {
		{
			Type:        RunCommand,
			Command:     "c4kit validate",
			Description: "Validate the workspace declaration",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
