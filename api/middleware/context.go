package middleware

import (
	"context"

	"github.com/freshmart-id/freshmart-backend/pkg/auth"
)

type contextKey string

const ctxClaims contextKey = "access_claims"

// ClaimsFromContext returns the authenticated claims, or nil on
// unauthenticated routes.
func ClaimsFromContext(ctx context.Context) *auth.AccessTokenClaims {
	if ctx == nil {
		return nil
	}
	if claims, ok := ctx.Value(ctxClaims).(*auth.AccessTokenClaims); ok {
		return claims
	}
	return nil
}

// WithClaims seeds the context for handler tests.
func WithClaims(ctx context.Context, claims *auth.AccessTokenClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxClaims, claims)
}
