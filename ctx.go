package crm

import "context"

var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// Can is a convenience function to check a permission grant directly from
// the standard context
func Can(ctx context.Context, module, action string) bool {
	user, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return user.Can(module, action)
}
