package identity

import (
	"context"
	"testing"
)

func TestWithVisitorAndVisitorFromContext(t *testing.T) {
	ctx := context.Background()
	ctx = WithVisitor(ctx, Visitor{ID: "user-123", Email: "visitor@example.com"})

	got, ok := VisitorFromContext(ctx)
	if !ok {
		t.Fatalf("expected visitor to be present")
	}
	if got.ID != "user-123" {
		t.Fatalf("expected user-123, got %s", got.ID)
	}
	if got.Email != "visitor@example.com" {
		t.Fatalf("expected visitor email, got %s", got.Email)
	}
}

func TestVisitorFromContext_EmptyOrMissing(t *testing.T) {
	ctx := context.Background()
	if _, ok := VisitorFromContext(ctx); ok {
		t.Fatalf("expected missing visitor to return false")
	}

	ctx = WithVisitor(context.Background(), Visitor{})
	if _, ok := VisitorFromContext(ctx); ok {
		t.Fatalf("expected empty visitor id to return false")
	}
}

func TestStaffFromContext(t *testing.T) {
	ctx := WithStaff(context.Background(), "staff-7")
	got, ok := StaffFromContext(ctx)
	if !ok || got != "staff-7" {
		t.Fatalf("expected staff-7, got %q ok=%v", got, ok)
	}

	if _, ok := StaffFromContext(context.Background()); ok {
		t.Fatalf("expected missing staff id to return false")
	}
}
