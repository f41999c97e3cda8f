package utils

import "context"

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	IsAdminKey contextKey = "is_admin"
)

// SetUserContext sets user info into context (called by middleware)
func SetUserContext(ctx context.Context, id string, isAdmin bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, IsAdminKey, isAdmin)
	return ctx
}

// GetUserIDFromContext retrieves the authenticated user id safely
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok && id != ""
}

// IsAdminFromContext reports whether the caller carries the admin role
func IsAdminFromContext(ctx context.Context) bool {
	isAdmin, _ := ctx.Value(IsAdminKey).(bool)
	return isAdmin
}
