package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type contextKey string

const (
	tenantContextKey contextKey = "tenant_context"
)

// TenantContext is the caller identity derived from a verified bearer token.
// It is attached once by the JWT middleware and never mutated afterwards.
type TenantContext struct {
	UserID     int64
	Username   string
	TenantID   int64
	TenantName string
	TokenID    string
	ExpiresAt  time.Time
}

// WithTenant returns a child context carrying tc.
func WithTenant(ctx context.Context, tc TenantContext) context.Context {
	return context.WithValue(ctx, tenantContextKey, tc)
}

// TenantFromContext extracts the tenant context from the request context
func TenantFromContext(ctx context.Context) (TenantContext, bool) {
	tc, ok := ctx.Value(tenantContextKey).(TenantContext)
	return tc, ok
}

// ParseID validates a positive integer identifier from a path parameter
func ParseID(idStr string, fieldName string) (int64, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return 0, ValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ValidationError(fmt.Sprintf("%s must be a positive integer", fieldName))
	}
	return id, nil
}

// OptionalString maps an empty filter to nil so it reaches the gateway as NULL
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParseDate parses YYYY-MM-DD in the given location
func ParseDate(dateStr, fieldName string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dateStr), loc)
	if err != nil {
		return time.Time{}, ValidationError(fmt.Sprintf("%s must be in YYYY-MM-DD format", fieldName))
	}
	return date, nil
}

// ValidateDateRange validates date ranges to prevent abuse
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return ValidationError("end date cannot be before start date")
	}

	duration := endDate.Sub(startDate)
	maxDuration := time.Hour * 24 * 365 * 10 // 10 years
	if duration > maxDuration {
		return ValidationError("date range cannot exceed 10 years")
	}

	return nil
}
