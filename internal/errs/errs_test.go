package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chefos/platform/pkg/schema"
)

func TestFromPassesTypedErrorsThrough(t *testing.T) {
	orig := Forbidden("Invalid credentials.")
	got := From(fmt.Errorf("login: %w", orig))
	if got != orig {
		t.Fatalf("wrapped typed error not recovered: %+v", got)
	}
	if got.Status != 403 {
		t.Fatalf("status = %d, want 403", got.Status)
	}
}

func TestFromDefaultsToInternalFault(t *testing.T) {
	got := From(errors.New("pq: connection refused"))
	if got.Kind != KindFault || got.Status != 500 {
		t.Fatalf("unexpected normalization: %+v", got)
	}
	if got.Message != "pq: connection refused" {
		t.Fatalf("fault must keep the cause's message, got %q", got.Message)
	}
	if len(got.Issues) != 0 {
		t.Fatalf("fault must carry no issues: %+v", got.Issues)
	}
}

func TestValidationKeepsIssuesVerbatim(t *testing.T) {
	issues := []schema.Issue{{Path: []any{"email"}, Code: schema.CodeInvalidType, Message: "Required"}}
	e := Validation(issues)
	if e.Kind != KindValidation || e.Status != 400 || e.Message != "Validation error" {
		t.Fatalf("unexpected validation error: %+v", e)
	}
	if len(e.Issues) != 1 || e.Issues[0].Message != "Required" {
		t.Fatalf("issues not carried verbatim: %+v", e.Issues)
	}
}

func TestAggregateFoldsMembers(t *testing.T) {
	e := Aggregate("startup checks failed", []error{
		errors.New("database unreachable"),
		nil,
		errors.New("identity provider unreachable"),
	})
	if len(e.Issues) != 2 {
		t.Fatalf("expected 2 member issues, got %+v", e.Issues)
	}
	if e.Issues[0].Code != schema.CodeCustom || e.Issues[0].Message != "database unreachable" {
		t.Fatalf("unexpected member issue: %+v", e.Issues[0])
	}
	if e.Message != "startup checks failed" {
		t.Fatalf("aggregate message lost: %q", e.Message)
	}
}

func TestResponseMismatchMessage(t *testing.T) {
	e := ResponseMismatch(nil)
	if e.Message != "Response doesn't match the schema" {
		t.Fatalf("unexpected message: %q", e.Message)
	}
	if e.Status != 400 {
		t.Fatalf("status = %d, want 400", e.Status)
	}
}
