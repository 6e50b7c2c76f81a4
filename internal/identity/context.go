// Package identity carries the authenticated caller through request context.
package identity

import "context"

type ctxKey string

const (
	visitorKey ctxKey = "wardpass.visitor"
	staffKey   ctxKey = "wardpass.staff"
)

// Visitor is the authenticated person booking a visit. ID is the subject
// assigned by the external identity provider; Email may be empty when the
// provider does not include it in the token.
type Visitor struct {
	ID    string
	Email string
}

// WithVisitor stores the visitor identity in context.
func WithVisitor(ctx context.Context, v Visitor) context.Context {
	return context.WithValue(ctx, visitorKey, v)
}

// VisitorFromContext extracts the visitor identity if present.
func VisitorFromContext(ctx context.Context) (Visitor, bool) {
	v, ok := ctx.Value(visitorKey).(Visitor)
	return v, ok && v.ID != ""
}

// WithStaff stores the staff member id in context.
func WithStaff(ctx context.Context, staffID string) context.Context {
	return context.WithValue(ctx, staffKey, staffID)
}

// StaffFromContext extracts the staff member id if present.
func StaffFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(staffKey).(string)
	return id, ok && id != ""
}
