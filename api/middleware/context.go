package middleware

import (
	"context"

	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/google/uuid"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the caller resolved by Auth. The zero identity
// means the request is anonymous.
func IdentityFromContext(ctx context.Context) pkgAuth.Identity {
	if ctx == nil {
		return pkgAuth.Identity{}
	}
	if v, ok := ctx.Value(ctxIdentity).(pkgAuth.Identity); ok {
		return v
	}
	return pkgAuth.Identity{}
}

func UserIDFromContext(ctx context.Context) string {
	id := IdentityFromContext(ctx).UserID
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

// WithIdentity injects the authenticated caller into the context.
func WithIdentity(ctx context.Context, identity pkgAuth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
