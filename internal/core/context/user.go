package appctx

import "context"

// UserContext carries the authenticated principal for the request.
// TenantID is the opaque tenant identifier carried in the bearer credential;
// the domain layer never interprets it beyond partition resolution.
type UserContext struct {
	UserID   string
	TenantID string
	Email    string
}

type userKey struct{}

// WithUser stores user context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves user context or nil.
func GetUser(ctx context.Context) *UserContext {
	u, _ := ctx.Value(userKey{}).(*UserContext)
	return u
}

// GetTenantID returns the tenant ID from the user context or empty string.
func GetTenantID(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.TenantID
	}
	return ""
}
