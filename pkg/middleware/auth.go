package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// TokenHeader is the custom header carrying "Bearer <token>".
const TokenHeader = "Token"

// emailKey is the unexported context key for the authenticated email.
type emailKey struct{}

// EmailFromCtx returns the authenticated caller's email, attached by
// TokenGuard. The second return is false for unauthenticated requests.
func EmailFromCtx(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey{}).(string)
	return email, ok
}

// WithEmail stores an authenticated email in ctx. Exported for tests that
// exercise handlers without the full middleware chain.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey{}, email)
}

// TokenGuard verifies the bearer token from the Token header and attaches
// the decoded identity to the request context. Missing, malformed, expired
// or badly signed tokens all answer 401.
func TokenGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(TokenHeader)
		if header == "" {
			response.Unauthorized(w)
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}

		ctx := WithEmail(r.Context(), claims.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RoleLookup resolves the current role for an email. Implemented by the
// user repository; substituted with a fake in tests.
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireRole allows only callers whose stored role is one of roles.
// The role is re-read from the store on every request — the token itself
// never carries a trusted role claim. Must run after TokenGuard.
func RequireRole(store RoleLookup, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := EmailFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			role, err := store.RoleByEmail(r.Context(), email)
			if err != nil || !allowed[role] {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
