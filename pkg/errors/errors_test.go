package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code       Code
		status     int
		retryable  bool
		allowsInfo bool
	}{
		{CodeValidation, http.StatusBadRequest, false, true},
		{CodeUnauthorized, http.StatusUnauthorized, false, false},
		{CodeForbidden, http.StatusForbidden, false, false},
		{CodeNotFound, http.StatusNotFound, false, false},
		{CodeConflict, http.StatusConflict, false, true},
		{CodeStorage, http.StatusServiceUnavailable, true, true},
		{CodeInternal, http.StatusInternalServerError, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			meta := MetadataFor(tt.code)
			if meta.HTTPStatus != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, meta.HTTPStatus)
			}
			if meta.Retryable != tt.retryable {
				t.Fatalf("expected retryable=%v", tt.retryable)
			}
			if meta.DetailsAllowed != tt.allowsInfo {
				t.Fatalf("expected details allowed=%v", tt.allowsInfo)
			}
		})
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("MYSTERY"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := Wrap(CodeStorage, cause, "write cart blob")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
	if err.Code() != CodeStorage {
		t.Fatalf("unexpected code %s", err.Code())
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeValidation, nil, "missing field")
	if err.Unwrap() != nil {
		t.Fatal("expected no cause")
	}
	if err.Message() != "missing field" {
		t.Fatalf("unexpected message %q", err.Message())
	}
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	inner := New(CodeNotFound, "missing")
	outer := fmt.Errorf("handler: %w", inner)

	typed := As(outer)
	if typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected typed not-found error, got %v", typed)
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("expected nil for untyped errors")
	}
	if As(nil) != nil {
		t.Fatal("expected nil for nil input")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(CodeConflict, "duplicate").WithDetails(map[string]string{"product_id": "p1"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["product_id"] != "p1" {
		t.Fatalf("unexpected details %v", err.Details())
	}
}
