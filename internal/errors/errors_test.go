package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewError(t *testing.T) {
	cause := errors.New("underlying error")

	err := NewError(AmbiguousRelationship, "two relationships match", cause)

	if err.Code != AmbiguousRelationship {
		t.Errorf("Code = %v, want %v", err.Code, AmbiguousRelationship)
	}
	if err.Message != "two relationships match" {
		t.Errorf("Message = %q, want %q", err.Message, "two relationships match")
	}
	if len(err.SuggestedFixes) != 1 {
		t.Errorf("len(SuggestedFixes) = %d, want 1", len(err.SuggestedFixes))
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name      string
		code      ErrorCode
		message   string
		cause     error
		wantParts []string
	}{
		{
			name:      "with cause",
			code:      InvalidWorkspace,
			message:   "failed to parse workspace.toml",
			cause:     errors.New("unexpected token"),
			wantParts: []string{"INVALID_WORKSPACE", "failed to parse workspace.toml", "unexpected token"},
		},
		{
			name:      "without cause",
			code:      TechnologyMismatch,
			message:   "with technology 'Bogus'",
			cause:     nil,
			wantParts: []string{"TECHNOLOGY_MISMATCH", "with technology 'Bogus'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.code, tt.message, tt.cause)
			got := err.Error()

			for _, part := range tt.wantParts {
				if !strings.Contains(got, part) {
					t.Errorf("Error() = %q, want to contain %q", got, part)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewError(InvalidWorkspace, "something went wrong", cause)

	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}

	errNoCause := Errorf(ScopeViolation, "%s is already the scope of this view", "System 1")
	if errNoCause.Unwrap() != nil {
		t.Errorf("Unwrap() on error without cause should return nil")
	}
	if errNoCause.Message != "System 1 is already the scope of this view" {
		t.Errorf("Message = %q", errNoCause.Message)
	}
}

func TestCodeOf(t *testing.T) {
	inner := Errorf(ScopeViolation, "Components can't be added")
	wrapped := fmt.Errorf("view %q step 3: %w", "signin", inner)

	if got := CodeOf(wrapped); got != ScopeViolation {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, ScopeViolation)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
	if got := CodeOf(nil); got != "" {
		t.Errorf("CodeOf(nil) = %q, want empty", got)
	}
}

func TestHasCode(t *testing.T) {
	inner := Errorf(NoSuchRelationship, "A relationship between A and B does not exist in the model.")
	outer := NewError(InvalidWorkspace, "failed to build view", inner)

	if !HasCode(outer, InvalidWorkspace) {
		t.Error("HasCode(outer, InvalidWorkspace) = false, want true")
	}
	if !HasCode(outer, NoSuchRelationship) {
		t.Error("HasCode(outer, NoSuchRelationship) = false, want true")
	}
	if HasCode(outer, ScopeViolation) {
		t.Error("HasCode(outer, ScopeViolation) = true, want false")
	}
}

func TestWithDetails(t *testing.T) {
	err := Errorf(ElementNotFound, "element %q not found", "api").WithDetails(map[string]string{"id": "api"})

	details, ok := err.Details.(map[string]string)
	if !ok {
		t.Fatalf("Details type = %T, want map[string]string", err.Details)
	}
	if details["id"] != "api" {
		t.Errorf("Details[id] = %q, want %q", details["id"], "api")
	}
}

func TestGetSuggestedFixes(t *testing.T) {
	tests := []struct {
		code    ErrorCode
		wantLen int
	}{
		{AmbiguousRelationship, 1},
		{TechnologyMismatch, 1},
		{InvalidWorkspace, 1},
		{ScopeViolation, 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := len(GetSuggestedFixes(tt.code)); got != tt.wantLen {
				t.Errorf("len(GetSuggestedFixes(%s)) = %d, want %d", tt.code, got, tt.wantLen)
			}
		})
	}
}
