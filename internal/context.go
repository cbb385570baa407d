package internal

import "context"

type ctxKey string

const ContextUserKey ctxKey = "user"

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	id, ok := ctx.Value(ContextUserKey).(*Identity)
	return id, ok && id != nil
}

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ContextUserKey, id)
}
