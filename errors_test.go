package flatfiles_test

import (
	"errors"
	"fmt"
	"testing"

	flatfiles "github.com/dariosoltani/FlatFiles"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := flatfiles.Issues{
		{Column: "a", Code: flatfiles.CodeConversionFailed},
		{Column: "b", Code: flatfiles.CodeConversionFailed},
		{Column: "c", Code: flatfiles.CodeConversionFailed},
		{Column: "d", Code: flatfiles.CodeConversionFailed},
	}
	s := iss.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
}

func TestRecordError_UnwrapsToIssues(t *testing.T) {
	re := &flatfiles.RecordError{
		RecordNumber: 3,
		Issues:       flatfiles.Issues{{Code: flatfiles.CodeRecordTooShort}},
	}
	wrapped := fmt.Errorf("outer: %w", re)

	got, ok := flatfiles.AsRecordError(wrapped)
	if !ok || got.RecordNumber != 3 {
		t.Fatalf("AsRecordError = %v, %v", got, ok)
	}

	var iss flatfiles.Issues
	if !errors.As(wrapped, &iss) || len(iss) != 1 {
		t.Fatalf("errors.As to Issues failed: %v", iss)
	}
}
